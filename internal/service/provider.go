package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const (
	ProviderExchangeRateAPI  = "exchangerate-api.com"
	ProviderExchangeRateHost = "exchangerate.host"
)

// ExchangeRateProvider defines the interface for exchange rate providers
type ExchangeRateProvider interface {
	GetName() string
	GetRates(ctx context.Context, baseCurrency string) (models.RatesResponse, error)
}

// ProviderConfig describes a single exchange rate endpoint.
type ProviderConfig struct {
	Name    string
	BaseURL string
	APIKey  string
}

// ProviderFactory picks the provider for the current configuration
type ProviderFactory struct {
	configuration *config.Config
	logger        *logrus.Logger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(configuration *config.Config, logger *logrus.Logger) *ProviderFactory {
	return &ProviderFactory{
		configuration: configuration,
		logger:        logger,
	}
}

// CreateProvider returns the keyed provider when an API key is configured
// and the keyless one otherwise.
func (providerFactory *ProviderFactory) CreateProvider() ExchangeRateProvider {
	if providerFactory.configuration.ExchangeRateAPIKey != "" {
		return NewHTTPExchangeRateProvider(ProviderConfig{
			Name:    ProviderExchangeRateAPI,
			BaseURL: providerFactory.configuration.ExchangeRateAPIBaseURL,
			APIKey:  providerFactory.configuration.ExchangeRateAPIKey,
		}, providerFactory.logger)
	}
	return NewHTTPExchangeRateProvider(ProviderConfig{
		Name:    ProviderExchangeRateHost,
		BaseURL: providerFactory.configuration.ExchangeRateHostBaseURL,
	}, providerFactory.logger)
}
