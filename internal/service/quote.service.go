package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"stockpulse/internal/calendar"
	"stockpulse/internal/domain"
	"stockpulse/internal/logger"
)

/**

behavior - price history comes from whichever provider answers first in
priority order. the primary (yahoo) is free but flaky; the fallback is an
api-key provider. either way the caller gets the same canonical shape:
same-length date/close arrays, most recent last, with today's partial bar
dropped for equities so a half-finished session never shows as a close.

*/

// PriceProvider is one upstream source of daily closes and quotes.
type PriceProvider interface {
	DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error)
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)
}

type QuoteService interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
	DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error)
	YearStats(ctx context.Context, symbol string) (*domain.YearStats, error)
}

type quoteServiceHandler struct {
	Primary  PriceProvider
	Fallback PriceProvider
}

func NewQuoteService(primary, fallback PriceProvider) QuoteService {
	if primary == nil {
		primary = YahooProvider{}
	}
	return quoteServiceHandler{
		Primary:  primary,
		Fallback: fallback,
	}
}

func isCrypto(symbol string) bool {
	return strings.Contains(symbol, "-")
}

func (h quoteServiceHandler) providers() []PriceProvider {
	providers := []PriceProvider{h.Primary}
	if h.Fallback != nil {
		providers = append(providers, h.Fallback)
	}
	return providers
}

func (h quoteServiceHandler) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	symbol := strings.ToUpper(ticker)
	var lastErr error
	for _, p := range h.providers() {
		q, err := p.Quote(ctx, symbol)
		if err != nil {
			lastErr = err
			logger.FromContext(ctx).Warnf("quote provider failed for %s: %v", symbol, err)
			continue
		}
		return q, nil
	}
	return nil, fmt.Errorf("all quote providers failed for %s: %w", symbol, lastErr)
}

func (h quoteServiceHandler) DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error) {
	symbol = strings.ToUpper(symbol)
	var lastErr error
	for _, p := range h.providers() {
		history, err := p.DailyCloses(ctx, symbol, days)
		if err != nil {
			lastErr = err
			logger.FromContext(ctx).Warnf("price provider failed for %s: %v", symbol, err)
			continue
		}
		history = truncateMismatched(history)
		if !isCrypto(symbol) {
			history = dropToday(history, time.Now().UTC())
		}
		if history.Len() == 0 {
			lastErr = fmt.Errorf("no closes for %s", symbol)
			continue
		}
		return history, nil
	}
	return domain.PriceHistory{}, fmt.Errorf("all price providers failed for %s: %w", symbol, lastErr)
}

func (h quoteServiceHandler) YearStats(ctx context.Context, symbol string) (*domain.YearStats, error) {
	history, err := h.DailyCloses(ctx, symbol, 365)
	if err != nil {
		return nil, err
	}

	closes := history.Closes[:history.Len()]
	high, err := stats.Max(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 52w high: %w", err)
	}
	low, err := stats.Min(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 52w low: %w", err)
	}
	mean, err := stats.Mean(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 52w mean: %w", err)
	}

	last := closes[len(closes)-1]
	span := high - low
	position := 50.0
	if span > 0 {
		position = (last - low) / span * 100
	}

	return &domain.YearStats{
		High:     high,
		Low:      low,
		Mean:     mean,
		Position: position,
	}, nil
}

// ChangePct is the percent move from the previous close, rounded to two
// decimal places.
func ChangePct(current, previousClose float64) float64 {
	if previousClose == 0 || previousClose == current {
		return 0
	}
	return decimal.NewFromFloat(current).
		Sub(decimal.NewFromFloat(previousClose)).
		Div(decimal.NewFromFloat(previousClose)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// truncateMismatched trims date/close arrays to a shared length before the
// canonical shape leaves the provider boundary.
func truncateMismatched(h domain.PriceHistory) domain.PriceHistory {
	n := h.Len()
	return domain.PriceHistory{
		Dates:  h.Dates[:n],
		Closes: h.Closes[:n],
	}
}

// dropToday removes today's in-progress bar from an equity series.
func dropToday(h domain.PriceHistory, now time.Time) domain.PriceHistory {
	today := calendar.ToISODate(now)
	out := domain.PriceHistory{}
	for i := 0; i < h.Len(); i++ {
		d := h.Dates[i]
		if len(d) > 10 {
			d = d[:10]
		}
		if d == today {
			continue
		}
		out.Dates = append(out.Dates, d)
		out.Closes = append(out.Closes, h.Closes[i])
	}
	return out
}

// YahooProvider fetches from Yahoo Finance via piquette/finance-go.
type YahooProvider struct{}

func (YahooProvider) DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -days)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := domain.PriceHistory{}
	for iter.Next() {
		bar := iter.Bar()
		close := bar.AdjClose.InexactFloat64()
		if math.IsNaN(close) || close == 0 {
			continue
		}
		out.Dates = append(out.Dates, calendar.ToISODate(time.Unix(int64(bar.Timestamp), 0).UTC()))
		out.Closes = append(out.Closes, close)
	}
	if err := iter.Err(); err != nil {
		return domain.PriceHistory{}, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}
	return out, nil
}

func (YahooProvider) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	current := q.RegularMarketPrice
	prev := q.RegularMarketPreviousClose
	if prev == 0 {
		prev = current
	}
	return &domain.Quote{
		Ticker:       symbol,
		LastClose:    prev,
		CurrentPrice: current,
		ChangePct:    ChangePct(current, prev),
	}, nil
}
