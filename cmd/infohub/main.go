package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/client"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/logger"
	"github.com/TanujMamidala/InfoHub-Challenge/internal/platform"
)

const usage = `Commands:
  weather [city]     show weather (default London)
  currency <amount>  convert an INR amount to USD and EUR
  quote              fetch a new quote
  tab <name>         switch to weather, currency or quotes
  status             redraw the header and active tab
  help               show this message
  quit               exit`

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("INFOHUB_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001"
	}

	baseURL := flag.String("url", defaultURL, "InfoHub backend base URL")
	startTab := flag.String("tab", "weather", "Tab to open first (weather, currency, quotes)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	log := logger.New(*logLevel)

	tab, ok := client.ParseTab(*startTab)
	if !ok {
		log.Fatalf("Unknown tab %q", *startTab)
	}

	ctx, stop := platform.ShutdownContext(context.Background())
	defer stop()

	lastStatus := client.StatusChecking
	shell := client.NewShell(
		client.NewAPIClient(*baseURL, &http.Client{Timeout: 30 * time.Second}),
		client.WithLogger(log),
		client.WithOnChange(func(state client.ShellState) {
			if state.Status != lastStatus {
				log.WithFields(logrus.Fields{
					"from": lastStatus.String(),
					"to":   state.Status.String(),
				}).Info("Backend status changed")
				lastStatus = state.Status
			}
		}),
	)
	shell.Mount(ctx)
	defer shell.Unmount()

	selectTab(ctx, shell, tab)
	shell.Render(os.Stdout)
	fmt.Println()
	fmt.Println(usage)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, open := <-lines:
			if !open {
				return
			}
			if !runCommand(ctx, shell, line) {
				return
			}
		}
	}
}

func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// selectTab switches tabs and mounts the widget the first time it is shown.
func selectTab(ctx context.Context, shell *client.Shell, tab client.Tab) {
	shell.SelectTab(tab)
	switch tab {
	case client.TabWeather:
		shell.Weather.Mount(ctx)
	case client.TabQuote:
		shell.Quote.Mount(ctx)
	}
}

// runCommand executes one input line. It returns false when the user quits.
func runCommand(ctx context.Context, shell *client.Shell, line string) bool {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	argument = strings.TrimSpace(argument)

	switch strings.ToLower(command) {
	case "":
		return true
	case "quit", "exit":
		return false
	case "help":
		fmt.Println(usage)
		return true
	case "status":
	case "weather":
		shell.SelectTab(client.TabWeather)
		if argument == "" {
			shell.Weather.Mount(ctx)
		} else {
			shell.Weather.Fetch(ctx, argument)
		}
	case "currency":
		shell.SelectTab(client.TabCurrency)
		if argument != "" {
			shell.Currency.Convert(ctx, argument)
		}
	case "quote", "quotes":
		shell.SelectTab(client.TabQuote)
		shell.Quote.Refresh(ctx)
	case "tab":
		tab, ok := client.ParseTab(argument)
		if !ok {
			fmt.Printf("Unknown tab %q\n", argument)
			return true
		}
		selectTab(ctx, shell, tab)
	default:
		fmt.Printf("Unknown command %q; type help\n", command)
		return true
	}

	shell.Render(os.Stdout)
	return true
}
