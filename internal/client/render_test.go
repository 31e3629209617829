package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

func init() {
	color.NoColor = true
}

func TestRenderHeader(t *testing.T) {
	tests := []struct {
		name        string
		state       ShellState
		contains    []string
		notContains []string
	}{
		{
			name:        "checking",
			state:       ShellState{},
			contains:    []string{"Checking..."},
			notContains: []string{BannerOfflineTitle, BannerMissingKeysTitle},
		},
		{
			name:     "checking before first answer",
			state:    ShellState{Status: StatusChecking, Banner: BannerOffline},
			contains: []string{"Checking...", BannerOfflineTitle},
		},
		{
			name:        "reachable but not ok",
			state:       ShellState{Status: StatusOffline, Config: &models.ConfigFlags{}},
			contains:    []string{"Offline ●"},
			notContains: []string{BannerOfflineTitle, BannerMissingKeysTitle},
		},
		{
			name: "online with integrations",
			state: ShellState{
				Status: StatusOnline,
				Config: &models.ConfigFlags{OpenWeatherKeyPresent: true, QuoteAPIURLPresent: true},
			},
			contains:    []string{"Online ●", "Weather · Quotes"},
			notContains: []string{BannerOfflineTitle},
		},
		{
			name:     "offline banner",
			state:    ShellState{Status: StatusOffline, Banner: BannerOffline},
			contains: []string{"Offline ●", BannerOfflineTitle, BannerOfflineHint},
		},
		{
			name: "missing keys banner",
			state: ShellState{
				Status: StatusOnline,
				Config: &models.ConfigFlags{},
				Banner: BannerMissingKeys,
			},
			contains:    []string{"Online ●", BannerMissingKeysTitle},
			notContains: []string{BannerOfflineTitle},
		},
		{
			name:     "active tab is marked",
			state:    ShellState{ActiveTab: TabQuote},
			contains: []string{"Weather Currency [Quotes]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			RenderHeader(&out, tt.state)

			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out.String(), unwanted)
			}
		})
	}
}

func TestRoundTemperature(t *testing.T) {
	tests := []struct {
		input    float64
		expected int
	}{
		{18.37, 18},
		{18.5, 19},
		{-0.5, 0},
		{-3.6, -4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RoundTemperature(tt.input), "input %v", tt.input)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,000", FormatAmount(1000))
	assert.Equal(t, "1.2", FormatAmount(1.2))
	assert.Equal(t, "0.012", FormatAmount(0.0123))
}

func TestRenderWeather(t *testing.T) {
	temperature := 18.5
	var out bytes.Buffer
	RenderWeather(&out, WidgetState[models.WeatherResult]{
		Data: &models.WeatherResult{City: "London", Temperature: &temperature, Description: "broken clouds"},
	})

	assert.Contains(t, out.String(), "London")
	assert.Contains(t, out.String(), "19°C")
	assert.Contains(t, out.String(), "broken clouds")
	assert.NotContains(t, out.String(), "Last updated")

	out.Reset()
	RenderWeather(&out, WidgetState[models.WeatherResult]{
		Data:    &models.WeatherResult{City: "London"},
		Fetched: time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local),
	})
	assert.Contains(t, out.String(), "Last updated: 09:30:15")

	out.Reset()
	RenderWeather(&out, WidgetState[models.WeatherResult]{Error: "Please enter a city name"})
	assert.Contains(t, out.String(), "Please enter a city name")
	assert.NotContains(t, out.String(), "°C")
}

func TestRenderCurrency(t *testing.T) {
	var out bytes.Buffer
	RenderCurrency(&out, WidgetState[models.CurrencyResult]{
		Data: &models.CurrencyResult{AmountINR: 1000, USD: 12, EUR: 11, RatesSource: "exchangerate.host"},
	})

	assert.Contains(t, out.String(), "₹1,000")
	assert.Contains(t, out.String(), "$12")
	assert.Contains(t, out.String(), "€11")
	assert.Contains(t, out.String(), "Source: exchangerate.host")
	assert.NotContains(t, out.String(), "Updated:")
}

func TestRenderQuote(t *testing.T) {
	var out bytes.Buffer
	RenderQuote(&out, WidgetState[models.Quote]{Data: &models.Quote{Text: "Stay hungry."}})
	assert.Contains(t, out.String(), `"Stay hungry."`)
	assert.Contains(t, out.String(), "- Unknown")

	out.Reset()
	RenderQuote(&out, WidgetState[models.Quote]{Loading: true})
	assert.Contains(t, out.String(), "Finding inspiration...")
	assert.False(t, strings.Contains(out.String(), "Unknown"))
}

func TestShell_RenderShowsActiveWidget(t *testing.T) {
	backend := newFakeBackend(t)
	shell := NewShell(backend.client())
	shell.SelectTab(TabCurrency)

	var out bytes.Buffer
	shell.Render(&out)

	assert.Contains(t, out.String(), "Checking...")
	assert.Contains(t, out.String(), "Currency Converter")
	assert.NotContains(t, out.String(), "Daily Inspiration")
}
