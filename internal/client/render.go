package client

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const (
	BannerOfflineTitle     = "Cannot connect to backend server"
	BannerOfflineHint      = "Make sure the server is running on port 3001 and try again."
	BannerMissingKeysTitle = "API Keys Not Configured"
	BannerMissingKeysHint  = "Some features may not work. Please check the server's .env file."
)

var (
	onlineColor  = color.New(color.FgGreen, color.Bold)
	offlineColor = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.Faint)
	errorColor   = color.New(color.FgRed)
	titleColor   = color.New(color.Bold)

	amountPrinter = message.NewPrinter(language.English)
)

// RoundTemperature rounds half up, the way the header shows whole degrees.
func RoundTemperature(celsius float64) int {
	return int(math.Floor(celsius + 0.5))
}

// FormatAmount groups thousands and keeps up to three fraction digits.
func FormatAmount(value float64) string {
	return amountPrinter.Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
}

// RenderHeader writes the status line, integrations and any banner.
func RenderHeader(w io.Writer, state ShellState) {
	status := mutedColor.Sprint("Checking...")
	switch state.Status {
	case StatusOnline:
		status = onlineColor.Sprint("Online ●")
	case StatusOffline:
		status = offlineColor.Sprint("Offline ●")
	}

	line := "InfoHub  Status: " + status
	if integrations := state.Integrations(); len(integrations) > 0 {
		line += "  " + strings.Join(integrations, " · ")
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, renderTabs(state.ActiveTab))

	switch state.Banner {
	case BannerOffline:
		fmt.Fprintln(w, errorColor.Sprint(BannerOfflineTitle))
		fmt.Fprintln(w, BannerOfflineHint)
	case BannerMissingKeys:
		fmt.Fprintln(w, errorColor.Sprint(BannerMissingKeysTitle))
		fmt.Fprintln(w, BannerMissingKeysHint)
	}
}

func renderTabs(active Tab) string {
	labels := make([]string, 0, len(tabNames))
	for _, tab := range []Tab{TabWeather, TabCurrency, TabQuote} {
		label := tab.String()
		if tab == active {
			label = titleColor.Sprintf("[%s]", label)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " ")
}

// renderUpdated writes the local wall-clock time a result arrived.
func renderUpdated(w io.Writer, label string, fetched time.Time) {
	if fetched.IsZero() {
		return
	}
	fmt.Fprintln(w, mutedColor.Sprintf("%s: %s", label, fetched.Local().Format("15:04:05")))
}

func renderError(w io.Writer, message string) {
	fmt.Fprintln(w, errorColor.Sprint("Error"))
	fmt.Fprintln(w, message)
}

func RenderWeather(w io.Writer, state WidgetState[models.WeatherResult]) {
	fmt.Fprintln(w, titleColor.Sprint("Weather"))
	switch {
	case state.Loading:
		fmt.Fprintln(w, mutedColor.Sprint("Fetching weather data..."))
	case state.Error != "":
		renderError(w, state.Error)
	case state.Data != nil:
		weather := state.Data
		fmt.Fprintln(w, weather.City)
		if weather.Temperature != nil {
			fmt.Fprintf(w, "%d°C\n", RoundTemperature(*weather.Temperature))
		}
		if weather.Description != "" {
			fmt.Fprintln(w, weather.Description)
		}
		renderUpdated(w, "Last updated", state.Fetched)
	}
}

func RenderCurrency(w io.Writer, state WidgetState[models.CurrencyResult]) {
	fmt.Fprintln(w, titleColor.Sprint("Currency Converter"))
	switch {
	case state.Loading:
		fmt.Fprintln(w, mutedColor.Sprint("Converting..."))
	case state.Error != "":
		renderError(w, state.Error)
	case state.Data != nil:
		conversion := state.Data
		fmt.Fprintf(w, "INR ₹%s\n", FormatAmount(conversion.AmountINR))
		fmt.Fprintf(w, "USD $%s\n", FormatAmount(conversion.USD))
		fmt.Fprintf(w, "EUR €%s\n", FormatAmount(conversion.EUR))
		fmt.Fprintln(w, mutedColor.Sprintf("Source: %s", conversion.RatesSource))
		renderUpdated(w, "Updated", state.Fetched)
	}
}

func RenderQuote(w io.Writer, state WidgetState[models.Quote]) {
	fmt.Fprintln(w, titleColor.Sprint("Daily Inspiration"))
	switch {
	case state.Loading:
		fmt.Fprintln(w, mutedColor.Sprint("Finding inspiration..."))
	case state.Error != "":
		renderError(w, state.Error)
	case state.Data != nil:
		author := state.Data.Author
		if author == "" {
			author = "Unknown"
		}
		fmt.Fprintf(w, "\"%s\"\n", state.Data.Text)
		fmt.Fprintln(w, mutedColor.Sprintf("- %s", author))
		renderUpdated(w, "Last updated", state.Fetched)
	}
}

// Render writes the header followed by the active tab's widget.
func (shell *Shell) Render(w io.Writer) {
	state := shell.State()
	RenderHeader(w, state)
	fmt.Fprintln(w)
	switch state.ActiveTab {
	case TabCurrency:
		RenderCurrency(w, shell.Currency.State())
	case TabQuote:
		RenderQuote(w, shell.Quote.State())
	default:
		RenderWeather(w, shell.Weather.State())
	}
}
