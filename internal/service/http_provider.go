package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

// HTTPExchangeRateProvider implements ExchangeRateProvider for HTTP-based APIs
type HTTPExchangeRateProvider struct {
	configuration ProviderConfig
	logger        *logrus.Logger
	httpClient    *http.Client
}

// NewHTTPExchangeRateProvider creates a new HTTP exchange rate provider
func NewHTTPExchangeRateProvider(configuration ProviderConfig, logger *logrus.Logger) *HTTPExchangeRateProvider {
	return &HTTPExchangeRateProvider{
		configuration: configuration,
		logger:        logger,
		httpClient:    newHTTPClient(0),
	}
}

// GetName returns the provider name
func (provider *HTTPExchangeRateProvider) GetName() string {
	return provider.configuration.Name
}

// GetRates fetches exchange rates from the provider
func (provider *HTTPExchangeRateProvider) GetRates(ctx context.Context, baseCurrency string) (models.RatesResponse, error) {
	provider.logger.Debugf("Fetching %s rates from provider: %s", baseCurrency, provider.configuration.Name)

	var payload rateEnvelope
	if err := fetchJSON(ctx, provider.httpClient, provider.buildURL(baseCurrency), &payload); err != nil {
		return models.RatesResponse{}, err
	}
	return provider.parseResponse(payload, baseCurrency)
}

// rateEnvelope covers both supported payloads; pointers distinguish a
// missing rate from a zero one.
type rateEnvelope struct {
	Result          string              `json:"result"`
	BaseCode        string              `json:"base_code"`
	Base            string              `json:"base"`
	ConversionRates map[string]*float64 `json:"conversion_rates"`
	Rates           map[string]*float64 `json:"rates"`
}

// buildURL constructs the URL for the provider based on its configuration
func (provider *HTTPExchangeRateProvider) buildURL(baseCurrency string) string {
	baseURL := strings.TrimRight(provider.configuration.BaseURL, "/")

	switch provider.configuration.Name {
	case ProviderExchangeRateAPI:
		// https://v6.exchangerate-api.com/v6/<key>/latest/INR
		return fmt.Sprintf("%s/%s/latest/%s", baseURL, url.PathEscape(provider.configuration.APIKey), baseCurrency)
	default:
		// https://api.exchangerate.host/latest?base=INR&symbols=USD,EUR
		query := url.Values{}
		query.Set("base", baseCurrency)
		query.Set("symbols", "USD,EUR")
		return baseURL + "?" + query.Encode()
	}
}

// parseResponse picks the rate table the provider uses
func (provider *HTTPExchangeRateProvider) parseResponse(payload rateEnvelope, baseCurrency string) (models.RatesResponse, error) {
	table := payload.Rates
	base := payload.Base
	if provider.configuration.Name == ProviderExchangeRateAPI {
		table = payload.ConversionRates
		base = payload.BaseCode
	}

	if table == nil {
		return models.RatesResponse{}, &ServiceError{
			Type:    ErrorTypeInvalidResponse,
			Message: "no rates returned from exchange API",
		}
	}

	rates := make(map[string]float64, len(table))
	for code, rate := range table {
		if rate != nil {
			rates[code] = *rate
		}
	}
	if base == "" {
		base = baseCurrency
	}

	return models.RatesResponse{
		Base:     base,
		Rates:    rates,
		Provider: provider.configuration.Name,
	}, nil
}
