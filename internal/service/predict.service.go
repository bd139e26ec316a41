package service

import (
	"context"
	"fmt"

	"stockpulse/internal/domain"
)

// ModelServerClient is the boundary to the external prediction backend. The
// client owns all response-shape normalization; everything past this
// interface is canonical typed data.
type ModelServerClient interface {
	Predict(ctx context.Context, ticker string, models []string) ([]domain.ModelForecast, error)
	BacktestHistory(ctx context.Context, ticker string, models []string, days int) ([]domain.BacktestRow, error)
}

type PredictionService interface {
	Forecast(ctx context.Context, ticker string, models []string) ([]domain.ModelForecast, error)
	BacktestHistory(ctx context.Context, ticker string, models []string, days int) ([]domain.BacktestRow, error)
}

type predictionServiceHandler struct {
	Client ModelServerClient
}

func NewPredictionService(client ModelServerClient) PredictionService {
	return predictionServiceHandler{
		Client: client,
	}
}

func (h predictionServiceHandler) Forecast(ctx context.Context, ticker string, models []string) ([]domain.ModelForecast, error) {
	if len(models) == 0 {
		return nil, nil
	}
	forecasts, err := h.Client.Predict(ctx, ticker, models)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecasts for %s: %w", ticker, err)
	}
	return forecasts, nil
}

func (h predictionServiceHandler) BacktestHistory(ctx context.Context, ticker string, models []string, days int) ([]domain.BacktestRow, error) {
	if len(models) == 0 {
		return nil, nil
	}
	rows, err := h.Client.BacktestHistory(ctx, ticker, models, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest history for %s: %w", ticker, err)
	}
	return rows, nil
}
