package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"stockpulse/internal/domain"
	"stockpulse/pkg/finnhub"
)

type fakeEarningsProvider struct {
	info *domain.EarningsInfo
	err  error
}

func (f *fakeEarningsProvider) NextEarnings(ctx context.Context, symbol string) (*domain.EarningsInfo, error) {
	return f.info, f.err
}

func TestEarningsService_NextEarnings(t *testing.T) {
	t.Run("returns the provider's calendar entry", func(t *testing.T) {
		date := "2024-07-25"
		svc := NewEarningsService(&fakeEarningsProvider{info: &domain.EarningsInfo{
			NextEarningsDate: &date,
			Available:        true,
		}})

		info, err := svc.NextEarnings(context.Background(), "aapl")
		require.NoError(t, err)
		require.Equal(t, "AAPL", info.Ticker)
		require.True(t, info.Available)
		require.Equal(t, date, *info.NextEarningsDate)
	})

	t.Run("provider outage degrades to unavailable", func(t *testing.T) {
		svc := NewEarningsService(&fakeEarningsProvider{err: fmt.Errorf("down")})

		info, err := svc.NextEarnings(context.Background(), "AAPL")
		require.NoError(t, err)
		require.False(t, info.Available)
		require.Nil(t, info.NextEarningsDate)
	})

	t.Run("rate limiting surfaces as an error", func(t *testing.T) {
		svc := NewEarningsService(&fakeEarningsProvider{err: finnhub.ErrRateLimited})

		_, err := svc.NextEarnings(context.Background(), "AAPL")
		require.ErrorIs(t, err, finnhub.ErrRateLimited)
	})

	t.Run("no provider configured degrades to unavailable", func(t *testing.T) {
		svc := NewEarningsService(nil)

		info, err := svc.NextEarnings(context.Background(), "AAPL")
		require.NoError(t, err)
		require.False(t, info.Available)
	})
}
