package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockpulse/internal/calendar"
	"stockpulse/internal/domain"
)

type fakeProvider struct {
	history domain.PriceHistory
	quote   *domain.Quote
	err     error
	calls   int
}

func (f *fakeProvider) DailyCloses(ctx context.Context, symbol string, days int) (domain.PriceHistory, error) {
	f.calls++
	if f.err != nil {
		return domain.PriceHistory{}, f.err
	}
	return f.history, nil
}

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func TestQuoteService_DailyCloses(t *testing.T) {
	t.Run("primary answers", func(t *testing.T) {
		primary := &fakeProvider{history: domain.PriceHistory{
			Dates:  []string{"2024-06-06", "2024-06-07"},
			Closes: []float64{105, 110},
		}}
		fallback := &fakeProvider{}
		svc := NewQuoteService(primary, fallback)

		history, err := svc.DailyCloses(context.Background(), "aapl", 30)
		require.NoError(t, err)
		require.Equal(t, []float64{105, 110}, history.Closes)
		require.Equal(t, 0, fallback.calls)
	})

	t.Run("fallback covers a failed primary", func(t *testing.T) {
		primary := &fakeProvider{err: fmt.Errorf("rate limited")}
		fallback := &fakeProvider{history: domain.PriceHistory{
			Dates:  []string{"2024-06-07"},
			Closes: []float64{110},
		}}
		svc := NewQuoteService(primary, fallback)

		history, err := svc.DailyCloses(context.Background(), "AAPL", 30)
		require.NoError(t, err)
		require.Equal(t, []float64{110}, history.Closes)
	})

	t.Run("both failing surfaces an error", func(t *testing.T) {
		svc := NewQuoteService(
			&fakeProvider{err: fmt.Errorf("down")},
			&fakeProvider{err: fmt.Errorf("also down")},
		)
		_, err := svc.DailyCloses(context.Background(), "AAPL", 30)
		require.Error(t, err)
	})

	t.Run("todays partial bar is dropped for equities", func(t *testing.T) {
		today := calendar.ToISODate(time.Now().UTC())
		primary := &fakeProvider{history: domain.PriceHistory{
			Dates:  []string{"2024-06-07", today},
			Closes: []float64{110, 111},
		}}
		svc := NewQuoteService(primary, nil)

		history, err := svc.DailyCloses(context.Background(), "AAPL", 30)
		require.NoError(t, err)
		require.Equal(t, []string{"2024-06-07"}, history.Dates)
	})

	t.Run("mismatched lengths are truncated", func(t *testing.T) {
		primary := &fakeProvider{history: domain.PriceHistory{
			Dates:  []string{"2024-06-06", "2024-06-07", "2024-06-08"},
			Closes: []float64{105, 110},
		}}
		svc := NewQuoteService(primary, nil)

		history, err := svc.DailyCloses(context.Background(), "AAPL", 30)
		require.NoError(t, err)
		require.Len(t, history.Dates, 2)
		require.Len(t, history.Closes, 2)
	})
}

func TestQuoteService_GetQuote(t *testing.T) {
	primary := &fakeProvider{err: fmt.Errorf("down")}
	fallback := &fakeProvider{quote: &domain.Quote{
		Ticker:       "AAPL",
		LastClose:    100,
		CurrentPrice: 110,
		ChangePct:    10,
	}}
	svc := NewQuoteService(primary, fallback)

	q, err := svc.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)
	require.Equal(t, 110.0, q.CurrentPrice)
}

func TestQuoteService_YearStats(t *testing.T) {
	primary := &fakeProvider{history: domain.PriceHistory{
		Dates:  []string{"2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"},
		Closes: []float64{90, 120, 100, 110},
	}}
	svc := NewQuoteService(primary, nil)

	s, err := svc.YearStats(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 120.0, s.High)
	require.Equal(t, 90.0, s.Low)
	require.Equal(t, 105.0, s.Mean)
	require.InDelta(t, 66.67, s.Position, 0.01)
}

func TestChangePct(t *testing.T) {
	require.Equal(t, 10.0, ChangePct(110, 100))
	require.Equal(t, -2.5, ChangePct(97.5, 100))
	require.Equal(t, 0.0, ChangePct(100, 100))
	require.Equal(t, 0.0, ChangePct(100, 0))
}
