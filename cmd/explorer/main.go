// Package main is the entry point for the Mina explorer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/fd1az/minaview/business/chain"
	chainDI "github.com/fd1az/minaview/business/chain/di"
	"github.com/fd1az/minaview/business/network"
	networkDI "github.com/fd1az/minaview/business/network/di"
	"github.com/fd1az/minaview/business/pricing"
	pricingDI "github.com/fd1az/minaview/business/pricing/di"
	"github.com/fd1az/minaview/internal/apm"
	"github.com/fd1az/minaview/internal/config"
	"github.com/fd1az/minaview/internal/health"
	"github.com/fd1az/minaview/internal/logger"
	"github.com/fd1az/minaview/internal/metrics"
	"github.com/fd1az/minaview/internal/monolith"
	"github.com/fd1az/minaview/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// analyticsPeriodDays is the window shown in the TUI stats pane.
const analyticsPeriodDays = 7

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("minaview %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for debugging
	tuiMode := !*cliMode

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	// Run application
	if err := run(ctx, *configPath, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger (only log to stderr in CLI mode)
	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting Mina explorer",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		// Start Prometheus metrics server in background
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	// Start health check server
	healthPort := cfg.Telemetry.HealthPort
	if healthPort == 0 {
		healthPort = 8081
	}
	healthServer := health.NewServer(healthPort, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", healthPort)
	}
	defer healthServer.Stop(ctx)

	// Create monolith (application container)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		&network.Module{}, // Must be first - owns endpoint selection
		&chain.Module{},   // Attaches its clients to the network session
		&pricing.Module{}, // Independent price cache
	}

	// Register all module services
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	// Readiness checks resolve their services lazily from the container.
	healthServer.RegisterCheck("archive", func(ctx context.Context) (bool, string) {
		height, err := chainDI.GetArchiveReader(mono.Services()).BestHeight(ctx)
		if err != nil {
			return false, err.Error()
		}
		return true, fmt.Sprintf("tip height %d", height)
	})
	healthServer.RegisterCheck("price_cache", func(ctx context.Context) (bool, string) {
		if !pricingDI.GetPriceService(mono.Services()).Warm() {
			return false, "no cached price"
		}
		return true, "warm"
	})

	if tuiMode {
		startFunc := func() error {
			return mono.StartModules(ctx, modules...)
		}
		return runTUI(ctx, mono, startFunc)
	}

	// CLI mode: Start modules synchronously
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	return runCLI(ctx, mono, log)
}

func runCLI(ctx context.Context, mono monolith.Monolith, log *logger.Logger) error {
	session := networkDI.GetSession(mono.Services())
	feed := chainDI.GetBlockFeed(mono.Services())

	log.Info(ctx, "all modules started, following the chain",
		"network", session.Active().ID,
	)

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, "shutting down")
			feed.Close()
			return nil
		case ev, ok := <-feed.Events():
			if !ok {
				return nil
			}
			log.Info(ctx, "new block", "height", ev.Height, "state_hash", ev.StateHash)
		}
	}
}

func runTUI(ctx context.Context, mono monolith.Monolith, startFunc func() error) error {
	// Channel to receive StartModulesMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// Create and start the TUI program IMMEDIATELY (shows welcome screen)
	p := tea.NewProgram(ui.New(), tea.WithAltScreen())
	ui.Program = p

	// Run explorer logic in background (non-blocking)
	errCh := make(chan error, 1)
	go func() {
		// Wait for welcome screen to complete (StartModulesMsg signal)
		select {
		case <-startSignal:
			// Welcome complete, start modules
		case <-ctx.Done():
			errCh <- nil
			return
		}

		ui.Send(ui.StartupMsg{Step: "config", Status: "done"})
		ui.Send(ui.StartupMsg{Step: "archive", Status: "connecting"})
		ui.Send(ui.StartupMsg{Step: "daemon", Status: "connecting"})
		ui.Send(ui.StartupMsg{Step: "pricing", Status: "connecting"})

		// Start modules (connections happen here, TUI shows progress)
		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}
		ui.Send(ui.StartupMsg{Step: "archive", Status: "connected"})
		ui.Send(ui.StartupMsg{Step: "daemon", Status: "connected"})
		ui.Send(ui.StartupMsg{Step: "pricing", Status: "connected"})

		feedUI(ctx, mono)
		errCh <- nil
	}()

	// Run TUI (blocking) - shows immediately with welcome screen
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Check for background errors
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// feedUI bridges application services into TUI messages until ctx ends.
func feedUI(ctx context.Context, mono monolith.Monolith) {
	services := mono.Services()
	session := networkDI.GetSession(services)
	feed := chainDI.GetBlockFeed(services)
	analytics := chainDI.GetAnalyticsService(services)
	daemon := chainDI.GetDaemonReader(services)
	prices := pricingDI.GetPriceService(services)

	announceNetwork := func() {
		profile := session.Active()
		endpoints, err := session.Endpoints()
		if err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			return
		}
		ui.Send(ui.NetworkMsg{Profile: profile, Endpoints: endpoints})
	}
	announceNetwork()

	refresh := func() {
		if stats, err := analytics.Analyze(ctx, analyticsPeriodDays); err == nil {
			ui.Send(ui.AnalyticsMsg{Stats: stats})
			ui.Send(ui.ConnectionStatusMsg{Name: "Archive", Connected: true})
		} else {
			ui.Send(ui.ErrorMsg{Error: err})
			ui.Send(ui.ConnectionStatusMsg{Name: "Archive", Connected: false})
		}
		if snap, err := prices.Current(ctx); err == nil {
			ui.Send(ui.PriceMsg{Snapshot: snap})
		}
		ui.Send(ui.BreakerMsg{Open: daemon.BreakerOpen()})
		ui.Send(ui.ConnectionStatusMsg{Name: "Daemon", Connected: !daemon.BreakerOpen()})
	}

	// Cycle to the next profile in the resolver table on "n".
	ui.OnSwitchNetwork = func() {
		profiles := session.Resolver().Profiles()
		if len(profiles) < 2 {
			return
		}
		current := session.Active().ID
		next := profiles[0].ID
		for i, p := range profiles {
			if p.ID == current {
				next = profiles[(i+1)%len(profiles)].ID
				break
			}
		}
		if err := session.Use(ctx, next); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			return
		}
		announceNetwork()
		refresh()
	}
	ui.OnRefresh = refresh

	refresh()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			feed.Close()
			return
		case ev, ok := <-feed.Events():
			if !ok {
				return
			}
			ui.Send(ui.BlockMsg{Height: ev.Height, StateHash: ev.StateHash, Timestamp: time.Now()})
		case <-ticker.C:
			refresh()
		}
	}
}
