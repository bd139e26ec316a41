// Package twelvedata is a thin client for the Twelve Data REST API, used as
// the fallback price provider when Yahoo is unavailable.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stockpulse/internal/domain"
)

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
}

// flexFloat tolerates the API returning numbers either as JSON numbers or
// as quoted strings, which it does depending on the endpoint.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = flexFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("failed to parse number %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

type timeSeriesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string    `json:"datetime"`
		Close    flexFloat `json:"close"`
	} `json:"values"`
}

type quoteResponse struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Close         flexFloat `json:"close"`
	PreviousClose flexFloat `json:"previous_close"`
}

func (c Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("apikey", c.ApiKey)
	u := fmt.Sprintf("%s%s?%s", c.BaseUrl, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
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

// DailyCloses returns up to days of daily closes, oldest first.
func (c Client) DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", "1day")
	params.Set("outputsize", strconv.Itoa(days))

	var responseJson timeSeriesResponse
	if err := c.get(ctx, "/time_series", params, &responseJson); err != nil {
		return domain.PriceHistory{}, err
	}
	if responseJson.Status == "error" {
		return domain.PriceHistory{}, fmt.Errorf("twelve data error: %s", responseJson.Message)
	}

	// the API returns newest first
	out := domain.PriceHistory{}
	for i := len(responseJson.Values) - 1; i >= 0; i-- {
		v := responseJson.Values[i]
		if math.IsNaN(float64(v.Close)) {
			continue
		}
		d := v.Datetime
		if len(d) > 10 {
			d = d[:10]
		}
		out.Dates = append(out.Dates, d)
		out.Closes = append(out.Closes, float64(v.Close))
	}
	return out, nil
}

func (c Client) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var responseJson quoteResponse
	if err := c.get(ctx, "/quote", params, &responseJson); err != nil {
		return nil, err
	}
	if responseJson.Status == "error" {
		return nil, fmt.Errorf("twelve data error: %s", responseJson.Message)
	}

	current := float64(responseJson.Close)
	if math.IsNaN(current) {
		return nil, fmt.Errorf("twelve data quote for %s has no close", symbol)
	}
	prev := float64(responseJson.PreviousClose)
	if math.IsNaN(prev) || prev == 0 {
		prev = current
	}

	pct := 0.0
	if prev != 0 && prev != current {
		pct = (current - prev) / prev * 100
	}
	return &domain.Quote{
		Ticker:       symbol,
		LastClose:    prev,
		CurrentPrice: current,
		ChangePct:    pct,
	}, nil
}
