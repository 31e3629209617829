package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/TanujMamidala/InfoHub-Challenge/internal/models"
)

const (
	DefaultPollInterval = 10 * time.Second
	DefaultProbeTimeout = 2500 * time.Millisecond
)

// Status is the backend connectivity shown in the header.
type Status int

const (
	StatusChecking Status = iota
	StatusOnline
	StatusOffline
)

func (status Status) String() string {
	switch status {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "checking"
	}
}

// Banner is the warning shown under the header, if any. The offline banner
// shows until the first successful probe and whenever the backend is
// unreachable; a reachable backend reporting another status shows none.
type Banner int

const (
	BannerNone Banner = iota
	BannerOffline
	BannerMissingKeys
)

type Tab int

const (
	TabWeather Tab = iota
	TabCurrency
	TabQuote
)

var tabNames = map[Tab]string{
	TabWeather:  "Weather",
	TabCurrency: "Currency",
	TabQuote:    "Quotes",
}

func (tab Tab) String() string {
	return tabNames[tab]
}

// ParseTab accepts a tab name case-insensitively; "quotes" is accepted too.
func ParseTab(name string) (Tab, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weather":
		return TabWeather, true
	case "currency":
		return TabCurrency, true
	case "quote", "quotes":
		return TabQuote, true
	}
	return TabWeather, false
}

// ShellState is a snapshot of everything the header and banners render.
type ShellState struct {
	Status    Status
	Config    *models.ConfigFlags
	Banner    Banner
	ActiveTab Tab
}

// Integrations lists the integrations with credentials, for the header.
func (state ShellState) Integrations() []string {
	if state.Status != StatusOnline || state.Config == nil {
		return nil
	}
	var names []string
	if state.Config.OpenWeatherKeyPresent {
		names = append(names, "Weather")
	}
	if state.Config.ExchangeRateKeyPresent {
		names = append(names, "Currency")
	}
	if state.Config.QuoteAPIURLPresent {
		names = append(names, "Quotes")
	}
	return names
}

type probeResult struct {
	health models.HealthStatus
	config models.ConfigFlags
	err    error
}

// Shell owns backend health polling, tab selection and the three widgets.
type Shell struct {
	api          *APIClient
	logger       *logrus.Logger
	interval     time.Duration
	probeTimeout time.Duration
	onChange     func(ShellState)

	mu     sync.RWMutex
	state  ShellState
	poller *Poller[probeResult]

	Weather  *WeatherWidget
	Currency *CurrencyWidget
	Quote    *QuoteWidget
}

type ShellOption func(*Shell)

func WithPollInterval(interval time.Duration) ShellOption {
	return func(shell *Shell) { shell.interval = interval }
}

func WithProbeTimeout(timeout time.Duration) ShellOption {
	return func(shell *Shell) { shell.probeTimeout = timeout }
}

// WithOnChange registers a callback fired after every applied poll result.
// The callback runs on the polling goroutine and must not call Unmount.
func WithOnChange(onChange func(ShellState)) ShellOption {
	return func(shell *Shell) { shell.onChange = onChange }
}

func WithLogger(logger *logrus.Logger) ShellOption {
	return func(shell *Shell) { shell.logger = logger }
}

func NewShell(api *APIClient, options ...ShellOption) *Shell {
	shell := &Shell{
		api:          api,
		logger:       logrus.StandardLogger(),
		interval:     DefaultPollInterval,
		probeTimeout: DefaultProbeTimeout,
		state:        ShellState{Status: StatusChecking, Banner: BannerOffline},
		Weather:      NewWeatherWidget(api),
		Currency:     NewCurrencyWidget(api),
		Quote:        NewQuoteWidget(api),
	}
	for _, option := range options {
		option(shell)
	}
	return shell
}

// Mount starts health polling. Calling it again while mounted does nothing.
func (shell *Shell) Mount(ctx context.Context) {
	shell.mu.Lock()
	if shell.poller != nil {
		shell.mu.Unlock()
		return
	}
	shell.poller = NewPoller(shell.interval, shell.probe, shell.apply)
	poller := shell.poller
	shell.mu.Unlock()

	poller.Start(ctx)
}

// Unmount stops polling. Results of probes still in flight are dropped.
func (shell *Shell) Unmount() {
	shell.mu.Lock()
	poller := shell.poller
	shell.poller = nil
	shell.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
}

func (shell *Shell) State() ShellState {
	shell.mu.RLock()
	defer shell.mu.RUnlock()
	return shell.state
}

// SelectTab switches the visible widget. It has no network side effects.
func (shell *Shell) SelectTab(tab Tab) {
	shell.mu.Lock()
	defer shell.mu.Unlock()
	shell.state.ActiveTab = tab
}

// probe fetches health and config together; either failing fails both.
func (shell *Shell) probe(ctx context.Context) probeResult {
	var result probeResult
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		callContext, cancel := context.WithTimeout(groupContext, shell.probeTimeout)
		defer cancel()
		health, err := shell.api.Health(callContext)
		result.health = health
		return err
	})
	group.Go(func() error {
		callContext, cancel := context.WithTimeout(groupContext, shell.probeTimeout)
		defer cancel()
		flags, err := shell.api.Config(callContext)
		result.config = flags
		return err
	})

	result.err = group.Wait()
	return result
}

func (shell *Shell) apply(result probeResult) {
	shell.mu.Lock()
	if result.err != nil {
		shell.logger.Debugf("Backend health check failed: %v", result.err)
		shell.state.Status = StatusOffline
		shell.state.Config = nil
		shell.state.Banner = BannerOffline
	} else {
		flags := result.config
		shell.state.Config = &flags
		if result.health.Status == models.HealthStatusOK {
			shell.state.Status = StatusOnline
			shell.state.Banner = BannerNone
			if !flags.OpenWeatherKeyPresent && !flags.ExchangeRateKeyPresent {
				shell.state.Banner = BannerMissingKeys
			}
		} else {
			shell.state.Status = StatusOffline
			shell.state.Banner = BannerNone
		}
	}
	state := shell.state
	onChange := shell.onChange
	shell.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}
