// SPDX-License-Identifier: MIT

// Package config resolves runtime configuration with the precedence
// ENV > config file > built-in defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/courtside/scoreticker/internal/game"
)

// AppConfig is the fully resolved application configuration.
type AppConfig struct {
	// DataDir holds the snapshot, logo cache and history database.
	DataDir string

	// Leagues is the rotation order of scoreboards to poll.
	Leagues []game.League

	// FetchInterval is the delay between upstream scoreboard refreshes.
	FetchInterval time.Duration

	// RotateInterval is how long each game card stays on the display.
	RotateInterval time.Duration

	// Timezone converts UTC event times to wall-clock card text.
	TZOffsetHours int
	TZName        string

	// Upstream API settings.
	ESPNBaseURL      string
	ESPNTimeout      time.Duration
	UpstreamRPS      float64
	UpstreamBurst    int
	BreakerThreshold int
	BreakerReset     time.Duration

	// CacheTTL bounds how long a cached scoreboard may serve a refresh.
	CacheTTL time.Duration

	// RedisAddr enables the shared scoreboard cache when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LogoDir is an optional directory of pre-provisioned team logos.
	LogoDir string

	// Display output.
	DisplayDriver string
	SerialPort    string
	SerialBaud    int
	FramePath     string

	// API server.
	APIListenAddr  string
	APIToken       string
	AuthAnonymous  bool
	RateLimitRPS   int
	RateLimitBurst int
	MaxConns       int

	// MetricsAddr exposes Prometheus metrics when non-empty.
	MetricsAddr string

	// OTLPEndpoint enables trace export when non-empty.
	OTLPEndpoint string

	LogLevel string
	Version  string
}

const (
	defaultFetchInterval  = 5 * time.Minute
	defaultRotateInterval = 5 * time.Second
	defaultTZOffsetHours  = -5
	defaultTZName         = "EST"
	defaultESPNTimeout    = 15 * time.Second
	defaultUpstreamRPS    = 2.0
	defaultUpstreamBurst  = 4
	defaultBreakerThresh  = 5
	defaultBreakerReset   = 60 * time.Second
	defaultCacheTTL       = 10 * time.Minute
	defaultSerialBaud     = 921600
	defaultListenAddr     = ":8080"
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
	defaultMaxConns       = 256
	defaultLogLevel       = "info"
	defaultDisplayDriver  = "png"
)

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:          "/var/lib/scoreticker",
		Leagues:          append([]game.League(nil), game.DefaultLeagues...),
		FetchInterval:    defaultFetchInterval,
		RotateInterval:   defaultRotateInterval,
		TZOffsetHours:    defaultTZOffsetHours,
		TZName:           defaultTZName,
		ESPNBaseURL:      "https://site.api.espn.com",
		ESPNTimeout:      defaultESPNTimeout,
		UpstreamRPS:      defaultUpstreamRPS,
		UpstreamBurst:    defaultUpstreamBurst,
		BreakerThreshold: defaultBreakerThresh,
		BreakerReset:     defaultBreakerReset,
		CacheTTL:         defaultCacheTTL,
		DisplayDriver:    defaultDisplayDriver,
		SerialBaud:       defaultSerialBaud,
		APIListenAddr:    defaultListenAddr,
		RateLimitRPS:     defaultRateLimitRPS,
		RateLimitBurst:   defaultRateLimitBurst,
		MaxConns:         defaultMaxConns,
		LogLevel:         defaultLogLevel,
	}
}

// SnapshotPath is the location of the atomically written games snapshot.
func (c AppConfig) SnapshotPath() string {
	return filepath.Join(c.DataDir, "games.json")
}

// LogoCachePath is the on-disk logo cache directory.
func (c AppConfig) LogoCachePath() string {
	return filepath.Join(c.DataDir, "logos.cache")
}

// HistoryPath is the sqlite database of archived finals.
func (c AppConfig) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

// ResolvedFramePath returns the configured frame path or a default
// inside DataDir.
func (c AppConfig) ResolvedFramePath() string {
	if c.FramePath != "" {
		return c.FramePath
	}
	return filepath.Join(c.DataDir, "frame.png")
}

// Validate rejects configurations the daemon cannot run with.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if len(c.Leagues) == 0 {
		return fmt.Errorf("at least one league is required")
	}
	for _, l := range c.Leagues {
		if l.Sport == "" || l.Name == "" {
			return fmt.Errorf("invalid league %q", l.Name)
		}
	}
	if c.FetchInterval < 30*time.Second {
		return fmt.Errorf("fetch interval %s is below the 30s minimum", c.FetchInterval)
	}
	if c.RotateInterval < time.Second {
		return fmt.Errorf("rotate interval %s is below the 1s minimum", c.RotateInterval)
	}
	if c.TZOffsetHours < -12 || c.TZOffsetHours > 14 {
		return fmt.Errorf("tz offset %d out of range [-12, 14]", c.TZOffsetHours)
	}
	if !strings.HasPrefix(c.ESPNBaseURL, "http://") && !strings.HasPrefix(c.ESPNBaseURL, "https://") {
		return fmt.Errorf("espn base url %q must be http(s)", c.ESPNBaseURL)
	}
	if c.UpstreamRPS <= 0 {
		return fmt.Errorf("upstream rps must be positive")
	}
	if c.DisplayDriver == "serial" && strings.TrimSpace(c.SerialPort) == "" {
		return fmt.Errorf("serial display requires a serial port")
	}
	if c.APIToken == "" && !c.AuthAnonymous {
		return fmt.Errorf("api token is required unless anonymous auth is enabled")
	}
	return nil
}
