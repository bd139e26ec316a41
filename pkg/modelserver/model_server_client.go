// Package modelserver is the client for the prediction backend. The backend
// is a separately deployed service; its response field names have drifted
// across versions, so all shape normalization lives here and callers only
// see the canonical domain types.
package modelserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stockpulse/internal/domain"
)

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

type predictRequest struct {
	Ticker string   `json:"ticker"`
	Models []string `json:"models"`
}

type modelPrediction struct {
	Model       string    `json:"model"`
	Predictions []float64 `json:"predictions"`
	// older deployments used "preds"
	Preds      []float64 `json:"preds"`
	Confidence []float64 `json:"confidence"`
}

type predictResponse struct {
	Results []modelPrediction `json:"results"`
}

type backtestResponse struct {
	Rows []struct {
		Date   string             `json:"date"`
		Actual *float64           `json:"actual"`
		Pred   map[string]float64 `json:"pred"`
		// older deployments used "predictions"
		Predictions map[string]float64 `json:"predictions"`
	} `json:"rows"`
}

func (c Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseUrl+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("received status code %d: %s", response.StatusCode, string(responseBytes))
	}
	if err := json.Unmarshal(responseBytes, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Predict asks the backend for forward forecasts, one per requested model,
// ordered by increasing horizon offset.
func (c Client) Predict(ctx context.Context, ticker string, models []string) ([]domain.ModelForecast, error) {
	requestBytes, err := json.Marshal(predictRequest{
		Ticker: strings.ToUpper(ticker),
		Models: models,
	})
	if err != nil {
		return nil, err
	}

	var responseJson predictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", bytes.NewReader(requestBytes), &responseJson); err != nil {
		return nil, err
	}

	out := make([]domain.ModelForecast, 0, len(responseJson.Results))
	for _, r := range responseJson.Results {
		predictions := r.Predictions
		if len(predictions) == 0 {
			predictions = r.Preds
		}
		out = append(out, domain.ModelForecast{
			Model:       r.Model,
			Predictions: predictions,
			Confidence:  r.Confidence,
		})
	}
	return out, nil
}

// BacktestHistory fetches what each model predicted for past dates.
func (c Client) BacktestHistory(ctx context.Context, ticker string, models []string, days int) ([]domain.BacktestRow, error) {
	params := url.Values{}
	params.Set("ticker", strings.ToUpper(ticker))
	params.Set("models", strings.Join(models, ","))
	params.Set("days", strconv.Itoa(days))

	var responseJson backtestResponse
	if err := c.do(ctx, http.MethodGet, "/backtest?"+params.Encode(), nil, &responseJson); err != nil {
		return nil, err
	}

	out := make([]domain.BacktestRow, 0, len(responseJson.Rows))
	for _, r := range responseJson.Rows {
		pred := r.Pred
		if len(pred) == 0 {
			pred = r.Predictions
		}
		out = append(out, domain.BacktestRow{
			Date:   r.Date,
			Actual: r.Actual,
			Pred:   pred,
		})
	}
	return out, nil
}
