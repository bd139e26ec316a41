// Package finnhub is a thin client for the Finnhub REST API, used for the
// earnings calendar.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockpulse/internal/domain"
)

// ErrRateLimited is returned when Finnhub rejects the request with a 429.
var ErrRateLimited = errors.New("rate limited by finnhub")

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
}

type earningsCalendarResponse struct {
	EarningsCalendar []struct {
		Date string `json:"date"`
	} `json:"earningsCalendar"`
}

func (c Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("token", c.ApiKey)
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

	if response.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
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

// NextEarnings looks up the next scheduled earnings date for symbol within
// the coming 90 days. An empty calendar is not an error; it comes back with
// Available false.
func (c Client) NextEarnings(ctx context.Context, symbol string) (*domain.EarningsInfo, error) {
	today := time.Now().UTC()
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", today.Format("2006-01-02"))
	params.Set("to", today.AddDate(0, 0, 90).Format("2006-01-02"))

	var responseJson earningsCalendarResponse
	if err := c.get(ctx, "/calendar/earnings", params, &responseJson); err != nil {
		return nil, err
	}

	out := domain.EarningsInfo{Ticker: symbol}
	if len(responseJson.EarningsCalendar) > 0 && responseJson.EarningsCalendar[0].Date != "" {
		date := responseJson.EarningsCalendar[0].Date
		out.NextEarningsDate = &date
		out.Available = true
	}
	return &out, nil
}
