// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/courtside/scoreticker/internal/api"
	"github.com/courtside/scoreticker/internal/cache"
	"github.com/courtside/scoreticker/internal/config"
	"github.com/courtside/scoreticker/internal/daemon"
	"github.com/courtside/scoreticker/internal/display"
	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/history"
	"github.com/courtside/scoreticker/internal/jobs"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/courtside/scoreticker/internal/logo"
	"github.com/courtside/scoreticker/internal/telemetry"
	"github.com/courtside/scoreticker/internal/ticker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	log.Configure(log.Config{
		Level:   os.Getenv("TICKER_LOG_LEVEL"),
		Service: "scoreticker",
		Version: version,
	})
	logger := log.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Auto-load ${TICKER_DATA}/config.yaml when no explicit path is given.
	effectiveConfigPath := strings.TrimSpace(*configPath)
	if effectiveConfigPath == "" {
		dataDir := strings.TrimSpace(os.Getenv("TICKER_DATA"))
		if dataDir != "" {
			autoPath := filepath.Join(dataDir, "config.yaml")
			if _, err := os.Stat(autoPath); err == nil {
				effectiveConfigPath = autoPath
			}
		}
	}

	cfg, err := config.Load(effectiveConfigPath, version)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectiveConfigPath).
			Msg("failed to load configuration")
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping current")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.check_failed").
			Str("data_dir", cfg.DataDir).
			Msg("data dir is not writable")
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", cfg.APIListenAddr).
		Str("display", cfg.DisplayDriver).
		Msg("starting scoreticker")

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		ServiceName:    "scoreticker",
		ServiceVersion: version,
		Endpoint:       cfg.OTLPEndpoint,
		SamplingRate:   1.0,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("event", "telemetry.init_failed").Msg("trace export setup failed")
	}

	app, err := buildApp(cfg, tracing.Enabled())
	if err != nil {
		logger.Fatal().Err(err).Str("event", "startup.failed").Msg("component setup failed")
	}

	serverCfg := config.ParseServerConfigForApp(cfg)
	mgr, err := daemon.NewManager(serverCfg, daemon.Deps{
		Logger:         log.Base(),
		APIHandler:     app.api.Handler(),
		MetricsAddr:    cfg.MetricsAddr,
		MetricsHandler: promhttp.Handler(),
		MaxConns:       cfg.MaxConns,
		Ticker:         app.ticker,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("event", "manager.creation_failed").Msg("failed to create daemon manager")
	}
	app.registerShutdownHooks(mgr, tracing)

	if config.ParseBool("TICKER_INITIAL_REFRESH", true) {
		if _, err := app.refresh(ctx); err != nil {
			logger.Error().Err(err).Str("event", "refresh.initial_failed").Msg("initial refresh failed")
			logger.Warn().Msg("board stays empty until the next fetch interval or POST /api/refresh")
		}
	} else {
		logger.Warn().Msg("initial refresh disabled (TICKER_INITIAL_REFRESH=false)")
	}

	// Hot reload: SIGHUP or config file change re-applies the safe tunables.
	watcher := config.NewWatcher(effectiveConfigPath, version, cfg, app.applyConfig)
	go func() {
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("config watcher stopped")
		}
	}()

	if err := mgr.Start(ctx); err != nil {
		logger.Fatal().Err(err).Str("event", "daemon.failed").Msg("daemon failed")
	}
	logger.Info().Msg("scoreticker exiting")
}

// app bundles the wired components so refresh and reload can reach them.
type app struct {
	api    *api.Server
	ticker *ticker.Ticker

	store   cache.Cache
	hist    *history.Store
	logos   *logo.Store
	disp    display.Display
	client  *espn.Client
	tracing bool

	mu         sync.Mutex
	refreshCfg jobs.Config
	lastStatus jobs.Status
}

func buildApp(cfg config.AppConfig, tracing bool) (*app, error) {
	logger := log.WithComponent("main")

	a := &app{tracing: tracing}
	a.refreshCfg = jobs.Config{
		DataDir:  cfg.DataDir,
		Leagues:  cfg.Leagues,
		Timezone: game.Timezone{OffsetHours: cfg.TZOffsetHours, Name: cfg.TZName},
		CacheTTL: cfg.CacheTTL,
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log.WithComponent("cache"))
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		a.store = rc
	} else {
		a.store = cache.NewMemory(5 * time.Minute)
	}

	hist, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	a.hist = hist

	logos, err := logo.NewStore(logo.StoreOptions{
		AssetDir:  cfg.LogoDir,
		CachePath: cfg.LogoCachePath(),
		Logger:    log.WithComponent("logo"),
	})
	if err != nil {
		return nil, fmt.Errorf("logo store: %w", err)
	}
	a.logos = logos

	disp, err := display.New(cfg.DisplayDriver, display.Config{
		SerialPort: cfg.SerialPort,
		SerialBaud: cfg.SerialBaud,
		FramePath:  cfg.ResolvedFramePath(),
		Logger:     log.WithComponent("display"),
	})
	if err != nil {
		return nil, fmt.Errorf("display %q: %w", cfg.DisplayDriver, err)
	}
	a.disp = disp

	a.client = espn.New(cfg.ESPNBaseURL, espn.Options{
		Timeout:           cfg.ESPNTimeout,
		RequestsPerSecond: cfg.UpstreamRPS,
		Burst:             cfg.UpstreamBurst,
		Tracing:           tracing,
		Breaker:           espn.NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerReset),
	})

	// Seed the board from the last snapshot so a restart is not blank.
	var initial []game.Game
	if snap, err := jobs.ReadSnapshot(cfg.DataDir); err == nil {
		initial = snap.Games
		logger.Info().
			Str("event", "snapshot.restored").
			Int("games", len(initial)).
			Time("generated_at", snap.GeneratedAt).
			Msg("restored board from snapshot")
	}

	a.ticker = ticker.New(a.refreshGames, ticker.Options{
		RotateInterval: cfg.RotateInterval,
		FetchInterval:  cfg.FetchInterval,
		Display:        disp,
		Logos:          logos,
		InitialGames:   initial,
	})

	a.api = api.New(api.Config{
		APIToken:       cfg.APIToken,
		AuthAnonymous:  cfg.AuthAnonymous,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Tracing:        tracing,
		Version:        cfg.Version,
		Display:        cfg.DisplayDriver,
		BreakerState:   a.client.Breaker().StateString,
	}, api.Deps{
		Board:   a.ticker,
		History: hist,
		Refresh: a.refresh,
		Status:  a.status,
	})
	if len(initial) > 0 {
		a.api.SetReady(true)
	}

	return a, nil
}

// refresh runs a full cycle and feeds the result to the ticker and API.
func (a *app) refresh(ctx context.Context) (*jobs.Status, error) {
	a.mu.Lock()
	cfg := a.refreshCfg
	a.mu.Unlock()

	status, games, err := jobs.Refresh(ctx, cfg, a.client, a.store, a.hist)
	if err != nil {
		return nil, err
	}

	a.ticker.SetGames(games)
	a.api.SetReady(true)

	a.mu.Lock()
	a.lastStatus = *status
	a.mu.Unlock()
	return status, nil
}

// refreshGames adapts refresh for the ticker's fetch loop.
func (a *app) refreshGames(ctx context.Context) ([]game.Game, error) {
	if _, err := a.refresh(ctx); err != nil {
		return nil, err
	}
	return a.ticker.Games(), nil
}

func (a *app) status() jobs.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastStatus
}

// applyConfig applies hot-reloaded tunables.
func (a *app) applyConfig(cfg config.AppConfig) {
	a.mu.Lock()
	a.refreshCfg.Leagues = cfg.Leagues
	a.refreshCfg.Timezone = game.Timezone{OffsetHours: cfg.TZOffsetHours, Name: cfg.TZName}
	a.refreshCfg.CacheTTL = cfg.CacheTTL
	a.mu.Unlock()

	a.ticker.SetIntervals(cfg.RotateInterval, cfg.FetchInterval)
	a.api.UpdateConfig(api.Config{APIToken: cfg.APIToken, AuthAnonymous: cfg.AuthAnonymous})
	logger := log.WithComponent("main")
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown log level in reload")
	}
	logger.Info().
		Str("event", "config.reloaded").
		Int("leagues", len(cfg.Leagues)).
		Msg("applied reloaded configuration")
}

func (a *app) registerShutdownHooks(mgr daemon.Manager, tracing *telemetry.Provider) {
	mgr.RegisterShutdownHook("display", func(context.Context) error {
		return a.disp.Close()
	})
	mgr.RegisterShutdownHook("logo-store", func(context.Context) error {
		return a.logos.Close()
	})
	mgr.RegisterShutdownHook("history", func(context.Context) error {
		return a.hist.Close()
	})
	if rc, ok := a.store.(*cache.RedisCache); ok {
		mgr.RegisterShutdownHook("redis-cache", func(context.Context) error {
			return rc.Close()
		})
	}
	mgr.RegisterShutdownHook("telemetry", tracing.Shutdown)
}
