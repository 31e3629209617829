package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

func TestAPIClient_Success(t *testing.T) {
	backend := newFakeBackend(t)
	api := backend.client()
	ctx := context.Background()

	health, err := api.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HealthStatusOK, health.Status)

	flags, err := api.Config(ctx)
	require.NoError(t, err)
	assert.True(t, flags.QuoteAPIURLPresent)

	weather, err := api.Weather(ctx, "New York")
	require.NoError(t, err)
	assert.Equal(t, "New York", weather.City)

	conversion, err := api.Currency(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.2, conversion.USD)

	quote, err := api.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteSourceExternal, quote.Source)
}

func TestAPIClient_SendsAmountQuery(t *testing.T) {
	backend := newFakeBackend(t)
	amounts := make(chan string, 1)
	backend.handle("/api/currency", func(w http.ResponseWriter, r *http.Request) {
		amounts <- r.URL.Query().Get("amount")
		writeJSON(w, http.StatusOK, models.CurrencyResult{AmountINR: 12.5})
	})

	_, err := backend.client().Currency(context.Background(), 12.5)
	require.NoError(t, err)
	assert.Equal(t, "12.5", <-amounts)
}

func TestAPIClient_Errors(t *testing.T) {
	tests := []struct {
		name            string
		handler         http.HandlerFunc
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "backend error body",
			handler:         respondJSON(http.StatusBadGateway, models.ErrorResponse{Error: "OpenWeather API error (status 404): city not found"}),
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "OpenWeather API error (status 404): city not found",
		},
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
			},
			expectedStatus:  http.StatusServiceUnavailable,
			expectedMessage: "Request failed with status code 503",
		},
		{
			name:            "empty error field",
			handler:         respondJSON(http.StatusInternalServerError, models.ErrorResponse{}),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Request failed with status code 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend(t)
			backend.handle("/api/weather", tt.handler)

			_, err := backend.client().Weather(context.Background(), "London")
			require.Error(t, err)

			var apiError *APIError
			require.ErrorAs(t, err, &apiError)
			assert.Equal(t, tt.expectedStatus, apiError.StatusCode)
			assert.Equal(t, tt.expectedMessage, apiError.Message)
		})
	}
}

func TestAPIClient_Unreachable(t *testing.T) {
	api := NewAPIClient("http://127.0.0.1:1", nil)

	_, err := api.Health(context.Background())
	require.Error(t, err)

	var apiError *APIError
	assert.False(t, errors.As(err, &apiError))
}
