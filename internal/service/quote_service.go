package service

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

// BuiltinQuotes back the quote route whenever no external quote is available.
var BuiltinQuotes = []models.Quote{
	{Author: "Nelson Mandela", Text: "The greatest glory in living lies not in never falling, but in rising every time we fall."},
	{Author: "Walt Disney", Text: "The way to get started is to quit talking and begin doing."},
	{Author: "Eleanor Roosevelt", Text: "The future belongs to those who believe in the beauty of their dreams."},
	{Author: "Steve Jobs", Text: "Stay hungry, stay foolish."},
	{Author: "Confucius", Text: "It does not matter how slowly you go as long as you do not stop."},
}

const DefaultQuoteTimeout = 5 * time.Second

// QuoteService serves a quote from the configured external API, or one of
// BuiltinQuotes when that is unset or fails in any way. It never errors.
type QuoteService struct {
	configuration *config.Config
	logger        *logrus.Logger
	httpClient    *http.Client
	timeout       time.Duration
	pick          func(n int) int
}

func NewQuoteService(configuration *config.Config, logger *logrus.Logger) *QuoteService {
	timeout := configuration.QuoteTimeout
	if timeout <= 0 {
		timeout = DefaultQuoteTimeout
	}
	return &QuoteService{
		configuration: configuration,
		logger:        logger,
		httpClient:    newHTTPClient(timeout),
		timeout:       timeout,
		pick:          rand.Intn,
	}
}

// WithPicker replaces the random index source used for the mock set.
func (quoteService *QuoteService) WithPicker(pick func(n int) int) *QuoteService {
	quoteService.pick = pick
	return quoteService
}

// GetQuote returns an external quote when possible, falling back to the mock set.
func (quoteService *QuoteService) GetQuote(requestContext context.Context) models.QuoteResponse {
	if quoteService.configuration.QuoteAPIURL != "" {
		quote, err := quoteService.fetchExternal(requestContext)
		if err == nil {
			return models.QuoteResponse{Quote: quote, Source: models.QuoteSourceExternal}
		}

		switch ClassifyError(err) {
		case ErrorTypeInvalidResponse:
			quoteService.logger.Warnf("External quote API returned unexpected shape, falling back to mock: %v", err)
		default:
			quoteService.logger.Errorf("External quote fetch failed: %v", err)
		}
	}

	return models.QuoteResponse{Quote: quoteService.randomQuote(), Source: models.QuoteSourceMock}
}

func (quoteService *QuoteService) fetchExternal(requestContext context.Context) (models.Quote, error) {
	timeoutContext, cancel := context.WithTimeout(requestContext, quoteService.timeout)
	defer cancel()

	var payload interface{}
	if err := fetchJSON(timeoutContext, quoteService.httpClient, ResolveQuoteURL(quoteService.configuration.QuoteAPIURL), &payload); err != nil {
		return models.Quote{}, err
	}

	quote, ok := MatchQuote(payload)
	if !ok {
		return models.Quote{}, &ServiceError{Type: ErrorTypeInvalidResponse, Message: "unrecognized quote payload"}
	}
	return quote, nil
}

func (quoteService *QuoteService) randomQuote() models.Quote {
	return BuiltinQuotes[quoteService.pick(len(BuiltinQuotes))]
}

// ResolveQuoteURL appends /random to a bare quotable.io base URL.
func ResolveQuoteURL(raw string) string {
	if strings.Contains(raw, "quotable.io") && !strings.HasSuffix(raw, "/random") {
		return strings.TrimRight(raw, "/") + "/random"
	}
	return raw
}
