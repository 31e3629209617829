package client

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const (
	DefaultCity = "London"

	msgEnterCity      = "Please enter a city name"
	msgInvalidAmount  = "Please enter a valid amount greater than 0"
	msgInvalidQuote   = "Invalid quote response"
	msgWeatherFailed  = "Failed to load weather"
	msgCurrencyFailed = "Failed to convert currency"
	msgQuoteFailed    = "Failed to load quote"
)

var validate = validator.New()

type weatherQuery struct {
	City string `validate:"required"`
}

type currencyQuery struct {
	Amount float64 `validate:"gt=0"`
}

// WidgetState is what a widget renders. At most one of Loading, Error and
// Data is set. Fetched is when Data arrived.
type WidgetState[T any] struct {
	Loading bool
	Error   string
	Data    *T
	Fetched time.Time
}

// fetchState tracks one widget's request lifecycle. Every fetch takes a new
// sequence number and only the latest one may settle the state.
type fetchState[T any] struct {
	mu       sync.Mutex
	sequence uint64
	state    WidgetState[T]
}

func (fetch *fetchState[T]) snapshot() WidgetState[T] {
	fetch.mu.Lock()
	defer fetch.mu.Unlock()
	return fetch.state
}

func (fetch *fetchState[T]) begin() uint64 {
	fetch.mu.Lock()
	defer fetch.mu.Unlock()
	fetch.sequence++
	fetch.state = WidgetState[T]{Loading: true}
	return fetch.sequence
}

// reject records a validation error and supersedes any fetch in flight.
func (fetch *fetchState[T]) reject(message string) {
	fetch.mu.Lock()
	defer fetch.mu.Unlock()
	fetch.sequence++
	fetch.state = WidgetState[T]{Error: message}
}

// settle stores the outcome of fetch sequence. It reports false when a newer
// fetch has started since.
func (fetch *fetchState[T]) settle(sequence uint64, data T, err error, fallback string) bool {
	fetch.mu.Lock()
	defer fetch.mu.Unlock()
	if sequence != fetch.sequence {
		return false
	}
	if err != nil {
		fetch.state = WidgetState[T]{Error: errorMessage(err, fallback)}
		return true
	}
	fetch.state = WidgetState[T]{Data: &data, Fetched: time.Now()}
	return true
}

// errorMessage prefers the backend's {"error"} text, then the error itself.
func errorMessage(err error, fallback string) string {
	var apiError *APIError
	if errors.As(err, &apiError) && apiError.Message != "" {
		return apiError.Message
	}
	if message := err.Error(); message != "" {
		return message
	}
	return fallback
}

// WeatherWidget fetches the default city once on mount and re-queries on demand.
type WeatherWidget struct {
	api       *APIClient
	mountOnce sync.Once
	fetch     fetchState[models.WeatherResult]
}

func NewWeatherWidget(api *APIClient) *WeatherWidget {
	return &WeatherWidget{api: api}
}

// Mount fetches DefaultCity the first time it is called.
func (widget *WeatherWidget) Mount(ctx context.Context) {
	widget.mountOnce.Do(func() { widget.Fetch(ctx, DefaultCity) })
}

// Fetch queries city and blocks until the widget state is settled.
func (widget *WeatherWidget) Fetch(ctx context.Context, city string) {
	city = strings.TrimSpace(city)
	if err := validate.Struct(weatherQuery{City: city}); err != nil {
		widget.fetch.reject(msgEnterCity)
		return
	}

	sequence := widget.fetch.begin()
	weather, err := widget.api.Weather(ctx, city)
	widget.fetch.settle(sequence, weather, err, msgWeatherFailed)
}

func (widget *WeatherWidget) State() WidgetState[models.WeatherResult] {
	return widget.fetch.snapshot()
}

// CurrencyWidget converts INR on demand; it never fetches by itself.
type CurrencyWidget struct {
	api   *APIClient
	fetch fetchState[models.CurrencyResult]
}

func NewCurrencyWidget(api *APIClient) *CurrencyWidget {
	return &CurrencyWidget{api: api}
}

// Convert validates the typed amount and converts it.
func (widget *CurrencyWidget) Convert(ctx context.Context, rawAmount string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) ||
		validate.Struct(currencyQuery{Amount: amount}) != nil {
		widget.fetch.reject(msgInvalidAmount)
		return
	}

	sequence := widget.fetch.begin()
	conversion, err := widget.api.Currency(ctx, amount)
	widget.fetch.settle(sequence, conversion, err, msgCurrencyFailed)
}

func (widget *CurrencyWidget) State() WidgetState[models.CurrencyResult] {
	return widget.fetch.snapshot()
}

// QuoteWidget loads a quote once on mount and on every Refresh.
type QuoteWidget struct {
	api       *APIClient
	mountOnce sync.Once
	fetch     fetchState[models.Quote]
}

func NewQuoteWidget(api *APIClient) *QuoteWidget {
	return &QuoteWidget{api: api}
}

func (widget *QuoteWidget) Mount(ctx context.Context) {
	widget.mountOnce.Do(func() { widget.Refresh(ctx) })
}

func (widget *QuoteWidget) Refresh(ctx context.Context) {
	sequence := widget.fetch.begin()
	response, err := widget.api.Quote(ctx)
	if err == nil && response.Quote.Text == "" {
		err = errors.New(msgInvalidQuote)
	}
	widget.fetch.settle(sequence, response.Quote, err, msgQuoteFailed)
}

func (widget *QuoteWidget) State() WidgetState[models.Quote] {
	return widget.fetch.snapshot()
}
