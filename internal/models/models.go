package models

// WeatherResult is the simplified OpenWeatherMap payload. Temperature is the
// upstream metric value and is only rounded for display.
type WeatherResult struct {
	City        string                 `json:"city"`
	Temperature *float64               `json:"temperature,omitempty"`
	Description string                 `json:"description,omitempty"`
	Raw         map[string]interface{} `json:"raw"`
}

type CurrencyResult struct {
	AmountINR   float64 `json:"amountINR"`
	USD         float64 `json:"usd"`
	EUR         float64 `json:"eur"`
	RatesSource string  `json:"ratesSource"`
}

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

const (
	QuoteSourceExternal = "external"
	QuoteSourceMock     = "mock"
)

type QuoteResponse struct {
	Quote  Quote  `json:"quote"`
	Source string `json:"source"`
}

// ConfigFlags only ever reports presence of a credential, never its value.
type ConfigFlags struct {
	OpenWeatherKeyPresent  bool `json:"openWeatherKeyPresent"`
	ExchangeRateKeyPresent bool `json:"exchangeRateKeyPresent"`
	QuoteAPIURLPresent     bool `json:"quoteApiUrlPresent"`
}

const HealthStatusOK = "ok"

type HealthStatus struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RatesResponse is the normalized result of an exchange rate provider call.
type RatesResponse struct {
	Base     string             `json:"base"`
	Rates    map[string]float64 `json:"rates"`
	Provider string             `json:"provider"`
}
