package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

// APIError is a non-2xx answer from the InfoHub backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// APIClient calls the InfoHub backend's /api routes.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for baseURL. A nil httpClient uses
// http.DefaultClient.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (apiClient *APIClient) Health(ctx context.Context) (models.HealthStatus, error) {
	var health models.HealthStatus
	err := apiClient.get(ctx, "/api/health", nil, &health)
	return health, err
}

func (apiClient *APIClient) Config(ctx context.Context) (models.ConfigFlags, error) {
	var flags models.ConfigFlags
	err := apiClient.get(ctx, "/api/config", nil, &flags)
	return flags, err
}

func (apiClient *APIClient) Weather(ctx context.Context, city string) (models.WeatherResult, error) {
	var weather models.WeatherResult
	err := apiClient.get(ctx, "/api/weather", url.Values{"city": {city}}, &weather)
	return weather, err
}

func (apiClient *APIClient) Currency(ctx context.Context, amount float64) (models.CurrencyResult, error) {
	var conversion models.CurrencyResult
	query := url.Values{"amount": {strconv.FormatFloat(amount, 'f', -1, 64)}}
	err := apiClient.get(ctx, "/api/currency", query, &conversion)
	return conversion, err
}

func (apiClient *APIClient) Quote(ctx context.Context) (models.QuoteResponse, error) {
	var quote models.QuoteResponse
	err := apiClient.get(ctx, "/api/quote", nil, &quote)
	return quote, err
}

func (apiClient *APIClient) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	requestURL := apiClient.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	response, err := apiClient.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorBody models.ErrorResponse
		if json.Unmarshal(body, &errorBody) == nil && errorBody.Error != "" {
			return &APIError{StatusCode: response.StatusCode, Message: errorBody.Error}
		}
		return &APIError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", response.StatusCode),
		}
	}

	return json.Unmarshal(body, target)
}
