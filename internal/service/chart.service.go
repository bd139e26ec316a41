package service

import (
	"context"
	"fmt"
	"sync"

	"stockpulse/internal/chart"
	"stockpulse/internal/domain"
	"stockpulse/internal/logger"
)

type GetMergedChartInput struct {
	Ticker         string
	Models         []string
	PastWindowSize int
	HorizonLength  int
}

type ChartService interface {
	GetMergedChart(ctx context.Context, in GetMergedChartInput) ([]domain.MergedRow, error)
}

type chartServiceHandler struct {
	QuoteService      QuoteService
	PredictionService PredictionService
}

func NewChartService(quoteService QuoteService, predictionService PredictionService) ChartService {
	return chartServiceHandler{
		QuoteService:      quoteService,
		PredictionService: predictionService,
	}
}

// GetMergedChart fetches the three chart sources concurrently and aligns
// them into one table. The realized-close history is the only required
// source; a failed backtest or forecast fetch degrades that series to
// empty rather than failing the whole chart.
func (h chartServiceHandler) GetMergedChart(ctx context.Context, in GetMergedChartInput) ([]domain.MergedRow, error) {
	if in.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	// enough history to fill the window even across weekends
	fetchDays := in.PastWindowSize*2 + 14

	var (
		wg        sync.WaitGroup
		actual    domain.PriceHistory
		actualErr error
		backtest  []domain.BacktestRow
		forecasts []domain.ModelForecast
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		actual, actualErr = h.QuoteService.DailyCloses(ctx, in.Ticker, fetchDays)
	}()
	go func() {
		defer wg.Done()
		rows, err := h.PredictionService.BacktestHistory(ctx, in.Ticker, in.Models, fetchDays)
		if err != nil {
			logger.FromContext(ctx).Warnf("backtest source unavailable for %s: %v", in.Ticker, err)
			return
		}
		backtest = rows
	}()
	go func() {
		defer wg.Done()
		out, err := h.PredictionService.Forecast(ctx, in.Ticker, in.Models)
		if err != nil {
			logger.FromContext(ctx).Warnf("forecast source unavailable for %s: %v", in.Ticker, err)
			return
		}
		forecasts = out
	}()
	wg.Wait()

	if actualErr != nil {
		// no anchor series at all; the caller renders its empty state
		logger.FromContext(ctx).Warnf("price history unavailable for %s: %v", in.Ticker, actualErr)
		return []domain.MergedRow{}, nil
	}

	return chart.Merge(actual, backtest, forecasts, in.PastWindowSize, in.HorizonLength), nil
}
