package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/addrsentry/addrsentry/internal/address"
	"github.com/addrsentry/addrsentry/internal/api/riskapi"
	"github.com/addrsentry/addrsentry/internal/config"
	"github.com/addrsentry/addrsentry/internal/history"
	"github.com/addrsentry/addrsentry/internal/notify"
	"github.com/addrsentry/addrsentry/internal/render"
	"github.com/addrsentry/addrsentry/internal/scan"
	"github.com/addrsentry/addrsentry/internal/settings"
)

const usage = `Usage:
  scanner [flags] <address>              scan one address
  scanner [flags] --url <page-url>       detect an address in a URL, scan it when autoScan is on
  scanner watch <address>                re-scan periodically, alert on risky results
  scanner settings get                   show persisted settings
  scanner settings set <field> <value>   set apiUrl or autoScan
  scanner history [n]                    list the n most recent scans (default 10)

Flags:
  --url <page-url>   page URL to detect an address in
  --wait <duration>  wait up to this long for the backend before scanning
`

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)

	var (
		pageURL = flag.String("url", "", "page URL to detect an address in")
		wait    = flag.Duration("wait", 0, "wait up to this long for the backend before scanning")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	// 3. Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	// 4. Wire the pipeline
	app, err := newApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer app.close()

	// 5. Dispatch
	var runErr error
	switch flag.Arg(0) {
	case "settings":
		runErr = app.runSettings(flag.Args()[1:])
	case "history":
		runErr = app.runHistory(ctx, flag.Args()[1:])
	case "watch":
		runErr = app.runWatch(ctx, flag.Arg(1), *wait)
	default:
		runErr = app.runScan(ctx, flag.Arg(0), *pageURL, *wait)
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("Command failed")
		os.Exit(1)
	}
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

type app struct {
	cfg        *config.Config
	store      settings.Store
	client     *riskapi.Client
	controller *scan.Controller
	history    history.Store
	notifier   notify.Notifier
}

func newApp(cfg *config.Config) (*app, error) {
	var store settings.Store = settings.NewFileStore(cfg.SettingsPath)
	if cfg.APIURLOverride != "" {
		store = overrideStore{Store: store, apiURL: cfg.APIURLOverride}
	}

	client := riskapi.NewClient(riskapi.ClientOptions{
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	var hist history.Store
	if cfg.DatabaseURL != "" {
		var err error
		hist, err = history.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting history store: %w", err)
		}
		log.Info().Msg("Using postgres scan history")
	} else {
		hist = history.NewMemoryStore()
	}

	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		var err error
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("initializing notifier: %w", err)
		}
		log.Info().Msg("Telegram alerts enabled")
	}

	controller := scan.NewController(scan.Options{
		Store:    store,
		Client:   client,
		Sink:     consoleSink{},
		Recorder: hist,
	})

	return &app{
		cfg:        cfg,
		store:      store,
		client:     client,
		controller: controller,
		history:    hist,
		notifier:   notifier,
	}, nil
}

func (a *app) close() {
	if err := a.history.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing history store failed")
	}
}

// runScan performs a single scan, either of an explicit address or of one
// detected in a page URL. URL detection only triggers a scan when the
// autoScan setting is on, mirroring the automatic trigger at popup open.
func (a *app) runScan(ctx context.Context, addr, pageURL string, wait time.Duration) error {
	if pageURL != "" {
		detected, ok := address.Detect(pageURL)
		if !ok {
			log.Info().Str("url", pageURL).Msg("No address found in URL")
			return nil
		}
		s, err := a.store.Load()
		if err != nil {
			log.Warn().Err(err).Msg("Settings load failed, using defaults")
		}
		if !s.AutoScan {
			fmt.Printf("Detected %s (autoScan is off, not scanning)\n", detected)
			return nil
		}
		addr = detected
	}

	if addr == "" && pageURL == "" {
		flag.Usage()
		return nil
	}

	if err := a.waitForBackend(ctx, wait); err != nil {
		return err
	}

	out := a.controller.Scan(ctx, addr)
	if out == nil {
		return nil
	}
	return out.Err
}

// runWatch re-scans one address at the configured interval and alerts when
// a result crosses the alert line.
func (a *app) runWatch(ctx context.Context, addr string, wait time.Duration) error {
	if addr == "" {
		flag.Usage()
		return fmt.Errorf("watch needs an address")
	}
	if err := a.waitForBackend(ctx, wait); err != nil {
		return err
	}

	interval := time.Duration(a.cfg.WatchInterval) * time.Second
	log.Info().Str("address", render.TruncateAddress(addr)).Dur("interval", interval).Msg("Watching address")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	alerting := false
	for {
		out := a.controller.Scan(ctx, addr)
		if out != nil && out.Err == nil && !out.Stale {
			risky := notify.ShouldAlert(out.Assessment)
			if risky && !alerting {
				a.alert(ctx, notify.AlertText(out.Assessment))
			}
			alerting = risky
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *app) alert(ctx context.Context, text string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(ctx, text); err != nil {
		log.Warn().Err(err).Msg("Sending alert failed")
	}
}

func (a *app) runSettings(args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("settings needs get or set")
	}
	switch args[0] {
	case "get":
		s, err := a.store.Load()
		if err != nil {
			return err
		}
		fmt.Printf("apiUrl:   %s\nautoScan: %t\n", s.APIURL, s.AutoScan)
		return nil
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("settings set needs a field and a value")
		}
		field, raw := args[1], args[2]
		var value any = raw
		if field == settings.FieldAutoScan {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("autoScan wants true or false: %w", err)
			}
			value = b
		}
		if err := a.store.Set(field, value); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", field, raw)
		return nil
	default:
		return fmt.Errorf("unknown settings command %q", args[0])
	}
}

func (a *app) runHistory(ctx context.Context, args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("history wants a positive count")
		}
		limit = n
	}

	entries, err := a.history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded scans.")
		return nil
	}
	for _, e := range entries {
		marker := " "
		if e.Sanctioned {
			marker = "!"
		}
		fmt.Printf("%s %s  %s  %3.0f/100  %s\n",
			marker,
			e.ScannedAt.Format(time.RFC3339),
			render.TruncateAddress(e.Address),
			e.RiskScore,
			e.RiskLabel,
		)
	}
	return nil
}

// waitForBackend blocks until the backend answers, when --wait is given.
func (a *app) waitForBackend(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	s, err := a.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Settings load failed, using defaults")
	}
	base := s.APIURL
	if base == "" {
		base = config.DefaultAPIURL
	}
	return a.client.WaitReachable(ctx, base, wait)
}

// consoleSink prints each panel to stdout. A printed panel fully replaces
// the previous one as the current result.
type consoleSink struct{}

func (consoleSink) Show(p render.Panel) {
	fmt.Println()
	fmt.Println(p.String())
}

// overrideStore pins apiUrl to the API_URL environment override while
// leaving the persisted settings untouched.
type overrideStore struct {
	settings.Store
	apiURL string
}

func (o overrideStore) Load() (settings.Settings, error) {
	s, err := o.Store.Load()
	s.APIURL = o.apiURL
	return s, err
}
