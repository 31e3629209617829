package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

const (
	WeatherPath          = "/data/2.5/weather"
	ExchangeRateAPIPath  = "/v6"
	ExchangeRateHostPath = "/latest"
	QuotePath            = "/quotes/random"

	// InvalidWeatherKey makes the weather endpoint answer 401.
	InvalidWeatherKey = "invalid-key"
	// UnknownCity makes the weather endpoint answer 404.
	UnknownCity = "Atlantis"

	MockUSDRate = 0.012
	MockEURRate = 0.011
	MockTemp    = 18.37
)

// MockUpstreamServer fakes OpenWeatherMap, both exchange rate providers and
// a quote API on one httptest server.
type MockUpstreamServer struct {
	server *httptest.Server

	mu           sync.Mutex
	rates        map[string]interface{}
	ratesStatus  int
	quoteBody    string
	quoteStatus  int
	quoteDelay   time.Duration
	requestCount map[string]int
}

// NewMockUpstreamServer creates a new mock upstream server
func NewMockUpstreamServer() *MockUpstreamServer {
	mock := &MockUpstreamServer{
		rates:        map[string]interface{}{"USD": MockUSDRate, "EUR": MockEURRate, "GBP": 0.0095},
		ratesStatus:  http.StatusOK,
		quoteBody:    `{"content":"Simplicity is prerequisite for reliability.","author":"Edsger Dijkstra"}`,
		quoteStatus:  http.StatusOK,
		requestCount: make(map[string]int),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handler))
	return mock
}

// handler handles HTTP requests to the mock server
func (m *MockUpstreamServer) handler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	m.mu.Lock()
	m.requestCount[routeOf(path)]++
	m.mu.Unlock()

	switch {
	case path == WeatherPath:
		m.serveWeather(w, r)
	case strings.HasPrefix(path, ExchangeRateAPIPath+"/"):
		m.serveRates(w, "conversion_rates", "base_code")
	case path == ExchangeRateHostPath:
		m.serveRates(w, "rates", "base")
	case strings.HasPrefix(path, "/quotes"):
		m.serveQuote(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "not found"})
	}
}

func (m *MockUpstreamServer) serveWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("appid") == InvalidWeatherKey {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"cod":     401,
			"message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info.",
		})
		return
	}
	city := query.Get("q")
	if city == UnknownCity {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"cod": "404", "message": "city not found"})
		return
	}
	if query.Get("units") != "metric" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "expected metric units"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name": city,
		"main": map[string]interface{}{"temp": MockTemp, "humidity": 71},
		"weather": []map[string]interface{}{
			{"main": "Clouds", "description": "broken clouds"},
		},
	})
}

func (m *MockUpstreamServer) serveRates(w http.ResponseWriter, ratesField, baseField string) {
	m.mu.Lock()
	status := m.ratesStatus
	rates := m.rates
	m.mu.Unlock()

	if status != http.StatusOK {
		writeJSON(w, status, map[string]interface{}{"result": "error", "error-type": "unavailable"})
		return
	}
	body := map[string]interface{}{baseField: "INR", "result": "success"}
	if rates != nil {
		body[ratesField] = rates
	}
	writeJSON(w, http.StatusOK, body)
}

func (m *MockUpstreamServer) serveQuote(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	status, body, delay := m.quoteStatus, m.quoteBody, m.quoteDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// SetRates replaces the rate table; nil drops the table from responses
func (m *MockUpstreamServer) SetRates(rates map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = rates
}

// SetRatesStatus makes both exchange providers answer with status
func (m *MockUpstreamServer) SetRatesStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratesStatus = status
}

// SetQuote sets the raw quote body and status
func (m *MockUpstreamServer) SetQuote(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteStatus = status
	m.quoteBody = body
}

// SetQuoteDelay delays quote responses
func (m *MockUpstreamServer) SetQuoteDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteDelay = delay
}

// Requests returns how many calls hit the route owning path
func (m *MockUpstreamServer) Requests(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[routeOf(path)]
}

// URL returns the mock server URL
func (m *MockUpstreamServer) URL() string {
	return m.server.URL
}

// Close closes the mock server
func (m *MockUpstreamServer) Close() {
	m.server.Close()
}

func routeOf(path string) string {
	switch {
	case strings.HasPrefix(path, ExchangeRateAPIPath+"/"), path == ExchangeRateAPIPath:
		return ExchangeRateAPIPath
	case strings.HasPrefix(path, "/quotes"):
		return QuotePath
	default:
		return path
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
