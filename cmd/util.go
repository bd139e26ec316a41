package cmd

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"stockpulse/api"
	"stockpulse/internal/config"
	"stockpulse/internal/repository"
	"stockpulse/internal/service"
	"stockpulse/pkg/finnhub"
	"stockpulse/pkg/modelserver"
	"stockpulse/pkg/twelvedata"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies(configPath string) (*api.ApiHandler, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConn, err := repository.NewDb(cfg.Database.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}

	userAccountRepository := repository.NewUserAccountRepository(dbConn)
	watchlistRepository := repository.NewWatchlistRepository(dbConn)

	httpClient := &http.Client{Timeout: 15 * time.Second}

	quoteService := service.NewQuoteService(
		service.YahooProvider{},
		twelvedata.Client{
			HttpClient: httpClient,
			BaseUrl:    cfg.TwelveData.BaseURL,
			ApiKey:     cfg.TwelveData.APIKey,
		},
	)
	earningsService := service.NewEarningsService(finnhub.Client{
		HttpClient: httpClient,
		BaseUrl:    cfg.Finnhub.BaseURL,
		ApiKey:     cfg.Finnhub.APIKey,
	})
	predictionService := service.NewPredictionService(modelserver.Client{
		HttpClient: httpClient,
		BaseUrl:    cfg.ModelServer.BaseURL,
	})
	chartService := service.NewChartService(quoteService, predictionService)

	apiHandler := &api.ApiHandler{
		Db:                    dbConn,
		QuoteService:          quoteService,
		EarningsService:       earningsService,
		PredictionService:     predictionService,
		ChartService:          chartService,
		WatchlistRepository:   watchlistRepository,
		UserAccountRepository: userAccountRepository,
		JwtSecret:             cfg.Auth.JWTSecret,
		TokenTTL:              time.Duration(cfg.Auth.ExpireMinute) * time.Minute,
		DefaultPastWindow:     cfg.Chart.PastWindowSize,
		DefaultHorizon:        cfg.Chart.HorizonLength,
	}

	return apiHandler, cfg, nil
}
