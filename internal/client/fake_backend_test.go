package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

// fakeBackend serves the InfoHub /api routes with canned answers.
type fakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	requests map[string]int
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	backend := &fakeBackend{
		requests: make(map[string]int),
		handlers: map[string]http.HandlerFunc{
			"/api/health": respondJSON(http.StatusOK, models.HealthStatus{Status: models.HealthStatusOK}),
			"/api/config": respondJSON(http.StatusOK, models.ConfigFlags{
				OpenWeatherKeyPresent:  true,
				ExchangeRateKeyPresent: true,
				QuoteAPIURLPresent:     true,
			}),
			"/api/weather": func(w http.ResponseWriter, r *http.Request) {
				temperature := 18.37
				writeJSON(w, http.StatusOK, models.WeatherResult{
					City:        r.URL.Query().Get("city"),
					Temperature: &temperature,
					Description: "broken clouds",
					Raw:         map[string]interface{}{},
				})
			},
			"/api/currency": respondJSON(http.StatusOK, models.CurrencyResult{
				AmountINR:   100,
				USD:         1.2,
				EUR:         1.1,
				RatesSource: "exchangerate.host",
			}),
			"/api/quote": respondJSON(http.StatusOK, models.QuoteResponse{
				Quote:  models.Quote{Text: "Simplicity is prerequisite for reliability.", Author: "Edsger W. Dijkstra"},
				Source: models.QuoteSourceExternal,
			}),
		},
	}

	backend.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backend.mu.Lock()
		backend.requests[r.URL.Path]++
		handler, ok := backend.handlers[r.URL.Path]
		backend.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(backend.server.Close)
	return backend
}

func (backend *fakeBackend) handle(path string, handler http.HandlerFunc) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.handlers[path] = handler
}

func (backend *fakeBackend) count(path string) int {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return backend.requests[path]
}

func (backend *fakeBackend) client() *APIClient {
	return NewAPIClient(backend.server.URL, backend.server.Client())
}

func respondJSON(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
