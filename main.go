package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/api"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/logger"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/platform"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)

	currencyService := service.NewCurrencyService(cfg, logger)
	handlers := api.NewHandlers(api.HandlerConfig{
		Config:          cfg,
		Logger:          logger,
		WeatherService:  service.NewWeatherService(cfg, logger),
		CurrencyService: currencyService,
		QuoteService:    service.NewQuoteService(cfg, logger),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.SetupRoutes(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	flags := cfg.Flags()
	logger.WithFields(logrus.Fields{
		"weather_key":    flags.OpenWeatherKeyPresent,
		"exchange_key":   flags.ExchangeRateKeyPresent,
		"quote_api":      flags.QuoteAPIURLPresent,
		"rates_provider": currencyService.ProviderName(),
	}).Info("Configuration loaded")

	go func() {
		logger.Infof("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	shutdownCtx, stop := platform.ShutdownContext(context.Background())
	defer stop()
	<-shutdownCtx.Done()

	logger.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
