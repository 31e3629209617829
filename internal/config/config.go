package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultOpenWeatherBaseURL      = "https://api.openweathermap.org/data/2.5/weather"
	DefaultExchangeRateAPIBaseURL  = "https://v6.exchangerate-api.com/v6"
	DefaultExchangeRateHostBaseURL = "https://api.exchangerate.host/latest"
)

// Config holds all configuration for the application. It is built once at
// startup and handed to every service; nothing else reads the environment.
type Config struct {
	Port     string
	LogLevel string

	// Weather
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// Currency
	ExchangeRateAPIKey      string
	ExchangeRateAPIBaseURL  string
	ExchangeRateHostBaseURL string

	// Quotes
	QuoteAPIURL  string
	QuoteTimeout time.Duration
}

// Flags reports which integrations have credentials configured.
type Flags struct {
	OpenWeatherKeyPresent  bool
	ExchangeRateKeyPresent bool
	QuoteAPIURLPresent     bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	quoteURL := getEnv("QUOTE_API_URL", "")
	if quoteURL == "" {
		quoteURL = getEnv("QUOTABLE_API_URL", "")
	}

	return &Config{
		Port:     getEnv("PORT", "3001"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", DefaultOpenWeatherBaseURL),

		ExchangeRateAPIKey:      getEnv("EXCHANGE_RATE_API_KEY", ""),
		ExchangeRateAPIBaseURL:  getEnv("EXCHANGE_RATE_API_BASE_URL", DefaultExchangeRateAPIBaseURL),
		ExchangeRateHostBaseURL: getEnv("EXCHANGE_RATE_HOST_BASE_URL", DefaultExchangeRateHostBaseURL),

		QuoteAPIURL:  quoteURL,
		QuoteTimeout: time.Duration(atoiOr(getEnv("QUOTE_API_TIMEOUT_SECONDS", "5"), 5)) * time.Second,
	}, nil
}

// Flags derives key presence from the loaded values. Values are never exposed.
func (configuration *Config) Flags() Flags {
	return Flags{
		OpenWeatherKeyPresent:  configuration.OpenWeatherAPIKey != "",
		ExchangeRateKeyPresent: configuration.ExchangeRateAPIKey != "",
		QuoteAPIURLPresent:     configuration.QuoteAPIURL != "",
	}
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func atoiOr(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}
