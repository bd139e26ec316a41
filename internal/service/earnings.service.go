package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockpulse/internal/domain"
	"stockpulse/internal/logger"
	"stockpulse/pkg/finnhub"
)

// EarningsProvider is the boundary to the earnings calendar backend.
type EarningsProvider interface {
	NextEarnings(ctx context.Context, symbol string) (*domain.EarningsInfo, error)
}

type EarningsService interface {
	NextEarnings(ctx context.Context, ticker string) (*domain.EarningsInfo, error)
}

type earningsServiceHandler struct {
	Provider EarningsProvider
}

func NewEarningsService(provider EarningsProvider) EarningsService {
	return earningsServiceHandler{
		Provider: provider,
	}
}

// NextEarnings returns the next scheduled earnings date for ticker. A
// calendar miss or a provider outage both degrade to an unavailable result
// rather than an error; only rate limiting is surfaced so the caller can
// back off.
func (h earningsServiceHandler) NextEarnings(ctx context.Context, ticker string) (*domain.EarningsInfo, error) {
	symbol := strings.ToUpper(ticker)
	if h.Provider == nil {
		return &domain.EarningsInfo{Ticker: symbol}, nil
	}

	info, err := h.Provider.NextEarnings(ctx, symbol)
	if errors.Is(err, finnhub.ErrRateLimited) {
		return nil, fmt.Errorf("failed to get earnings for %s: %w", symbol, err)
	}
	if err != nil {
		logger.Warn("earnings lookup for %s failed: %v", symbol, err)
		return &domain.EarningsInfo{Ticker: symbol}, nil
	}
	info.Ticker = symbol
	return info, nil
}
