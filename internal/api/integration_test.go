package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/service"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/testutils"
)

// integrationSuite serves the full router over a real listener backed by
// the fake upstreams.
type integrationSuite struct {
	server   *httptest.Server
	upstream *testutils.MockUpstreamServer
}

func newIntegrationSuite() *integrationSuite {
	upstream := testutils.NewMockUpstreamServer()
	cfg := testutils.MockConfigWithMocks(upstream)
	cfg.QuoteAPIURL = testutils.QuoteURL(upstream)

	return &integrationSuite{
		server:   httptest.NewServer(newTestRouter(cfg)),
		upstream: upstream,
	}
}

func (suite *integrationSuite) Close() {
	suite.server.Close()
	suite.upstream.Close()
}

func (suite *integrationSuite) getJSON(target string, body interface{}) (int, error) {
	response, err := http.Get(suite.server.URL + target)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	return response.StatusCode, json.NewDecoder(response.Body).Decode(body)
}

// Every request converts its own amount from its own upstream fetch.
func TestConcurrentCurrencyRequests(t *testing.T) {
	suite := newIntegrationSuite()
	defer suite.Close()

	const numRequests = 50

	var wg sync.WaitGroup
	results := make([]models.CurrencyResult, numRequests+1)
	errors := make(chan error, numRequests)

	for amount := 1; amount <= numRequests; amount++ {
		wg.Add(1)
		go func(amount int) {
			defer wg.Done()

			status, err := suite.getJSON(fmt.Sprintf("/api/currency?amount=%d", amount), &results[amount])
			if err != nil {
				errors <- fmt.Errorf("amount %d: %w", amount, err)
				return
			}
			if status != http.StatusOK {
				errors <- fmt.Errorf("amount %d: status %d", amount, status)
			}
		}(amount)
	}

	wg.Wait()
	close(errors)
	for err := range errors {
		t.Error(err)
	}

	for amount := 1; amount <= numRequests; amount++ {
		result := results[amount]
		assert.Equal(t, float64(amount), result.AmountINR)
		assert.Equal(t, service.ConvertAmount(float64(amount), testutils.MockUSDRate), result.USD, "amount %d", amount)
		assert.Equal(t, service.ConvertAmount(float64(amount), testutils.MockEURRate), result.EUR, "amount %d", amount)
		assert.Equal(t, service.ProviderExchangeRateHost, result.RatesSource)
	}
	assert.Equal(t, numRequests, suite.upstream.Requests(testutils.ExchangeRateHostPath))
}

func TestConcurrentQuoteRequests(t *testing.T) {
	suite := newIntegrationSuite()
	defer suite.Close()

	const numRequests = 30

	var wg sync.WaitGroup
	var mu sync.Mutex
	sources := make(map[string]int)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var response models.QuoteResponse
			status, err := suite.getJSON("/api/quote", &response)
			if err != nil || status != http.StatusOK {
				t.Errorf("quote request failed: status=%d err=%v", status, err)
				return
			}

			mu.Lock()
			sources[response.Source]++
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, map[string]int{models.QuoteSourceExternal: numRequests}, sources)
	assert.Equal(t, numRequests, suite.upstream.Requests(testutils.QuotePath))
}

func TestConcurrentHealthChecks(t *testing.T) {
	suite := newIntegrationSuite()
	defer suite.Close()

	const (
		numGoroutines        = 20
		requestsPerGoroutine = 5
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < requestsPerGoroutine; j++ {
				var health models.HealthStatus
				status, err := suite.getJSON("/api/health", &health)
				if err != nil {
					t.Logf("health request failed: %v", err)
					continue
				}
				if status == http.StatusOK && health.Status == models.HealthStatusOK {
					mu.Lock()
					successCount++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()
	require.Equal(t, numGoroutines*requestsPerGoroutine, successCount)
}

func BenchmarkHealthCheck(b *testing.B) {
	suite := newIntegrationSuite()
	defer suite.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			response, err := http.Get(suite.server.URL + "/api/health")
			if err != nil {
				b.Error(err)
				continue
			}
			response.Body.Close()
		}
	})
}

func BenchmarkCurrencyEndpoint(b *testing.B) {
	suite := newIntegrationSuite()
	defer suite.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			response, err := http.Get(suite.server.URL + "/api/currency?amount=100")
			if err != nil {
				b.Error(err)
				continue
			}
			response.Body.Close()
		}
	})
}
