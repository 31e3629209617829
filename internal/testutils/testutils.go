package testutils

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/config"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/logger"
)

// MockLogger creates a logger that discards output
func MockLogger() *logrus.Logger {
	return logger.NewWithOutput("debug", io.Discard)
}

// MockConfig creates a configuration with no keys and unroutable upstreams
func MockConfig() *config.Config {
	return &config.Config{
		Port:                    "0",
		LogLevel:                "debug",
		OpenWeatherBaseURL:      "http://127.0.0.1:1" + WeatherPath,
		ExchangeRateAPIBaseURL:  "http://127.0.0.1:1" + ExchangeRateAPIPath,
		ExchangeRateHostBaseURL: "http://127.0.0.1:1" + ExchangeRateHostPath,
		QuoteTimeout:            5 * time.Second,
	}
}

// MockConfigWithMocks points every upstream at the mock server. Keys and the
// quote URL are left empty for the test to set.
func MockConfigWithMocks(upstream *MockUpstreamServer) *config.Config {
	cfg := MockConfig()
	cfg.OpenWeatherBaseURL = upstream.URL() + WeatherPath
	cfg.ExchangeRateAPIBaseURL = upstream.URL() + ExchangeRateAPIPath
	cfg.ExchangeRateHostBaseURL = upstream.URL() + ExchangeRateHostPath
	return cfg
}

// QuoteURL is the quote endpoint on the mock server
func QuoteURL(upstream *MockUpstreamServer) string {
	return upstream.URL() + QuotePath
}
