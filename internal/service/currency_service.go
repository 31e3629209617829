package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const (
	baseCurrencyINR = "INR"
	ratePrecision   = 4
)

// CurrencyService converts INR amounts into USD and EUR. Rates are fetched
// on every call.
type CurrencyService struct {
	configuration *config.Config
	logger        *logrus.Logger
	provider      ExchangeRateProvider
}

func NewCurrencyService(configuration *config.Config, logger *logrus.Logger) *CurrencyService {
	providerFactory := NewProviderFactory(configuration, logger)
	return NewCurrencyServiceWithProvider(configuration, logger, providerFactory.CreateProvider())
}

// NewCurrencyServiceWithProvider wires an explicit provider.
func NewCurrencyServiceWithProvider(configuration *config.Config, logger *logrus.Logger, provider ExchangeRateProvider) *CurrencyService {
	return &CurrencyService{
		configuration: configuration,
		logger:        logger,
		provider:      provider,
	}
}

// ProviderName reports which provider supplies rates.
func (currencyService *CurrencyService) ProviderName() string {
	return currencyService.provider.GetName()
}

// Convert converts amount INR using freshly fetched rates.
func (currencyService *CurrencyService) Convert(requestContext context.Context, amount float64) (models.CurrencyResult, error) {
	exchangeRates, err := currencyService.provider.GetRates(requestContext, baseCurrencyINR)
	if err != nil {
		return models.CurrencyResult{}, err
	}

	usdRate, hasUSD := exchangeRates.Rates["USD"]
	eurRate, hasEUR := exchangeRates.Rates["EUR"]
	if !hasUSD || !hasEUR {
		return models.CurrencyResult{}, &ServiceError{
			Type:    ErrorTypeMissingRate,
			Message: "missing USD or EUR rate from exchange API",
		}
	}

	currencyService.logger.WithFields(logrus.Fields{
		"provider": exchangeRates.Provider,
		"amount":   amount,
	}).Debug("Converted INR amount")

	return models.CurrencyResult{
		AmountINR:   amount,
		USD:         ConvertAmount(amount, usdRate),
		EUR:         ConvertAmount(amount, eurRate),
		RatesSource: currencyService.provider.GetName(),
	}, nil
}

// ConvertAmount returns amount × rate rounded half away from zero to four
// decimal places.
func ConvertAmount(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(ratePrecision).
		InexactFloat64()
}
