// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/courtside/scoreticker/internal/log"
)

// Load resolves the application configuration. filePath may be empty, in
// which case only defaults and environment variables apply. The resolved
// config is validated before it is returned.
func Load(filePath, version string) (AppConfig, error) {
	cfg := Defaults()
	cfg.Version = version

	if filePath != "" {
		fc, err := LoadFile(filePath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = fc.merge(cfg); err != nil {
			return cfg, err
		}
	}

	cfg, err := applyEnv(cfg)
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.WithComponent("config")
	logger.Info().
		Str("event", "config.loaded").
		Str("file", filePath).
		Int("leagues", len(cfg.Leagues)).
		Dur("fetch_interval", cfg.FetchInterval).
		Dur("rotate_interval", cfg.RotateInterval).
		Str("display", cfg.DisplayDriver).
		Msg("configuration resolved")
	return cfg, nil
}

// applyEnv overlays TICKER_* environment variables onto cfg.
func applyEnv(cfg AppConfig) (AppConfig, error) {
	cfg.DataDir = ParseString("TICKER_DATA", cfg.DataDir)

	if raw, ok := lookupNonEmpty("TICKER_LEAGUES"); ok {
		leagues, err := parseLeagues(splitCSV(raw))
		if err != nil {
			return cfg, fmt.Errorf("TICKER_LEAGUES: %w", err)
		}
		cfg.Leagues = leagues
	}

	cfg.FetchInterval = ParseDuration("TICKER_FETCH_INTERVAL", cfg.FetchInterval)
	cfg.RotateInterval = ParseDuration("TICKER_ROTATE_INTERVAL", cfg.RotateInterval)
	cfg.TZOffsetHours = ParseInt("TICKER_TZ_OFFSET", cfg.TZOffsetHours)
	cfg.TZName = ParseString("TICKER_TZ_NAME", cfg.TZName)

	cfg.ESPNBaseURL = strings.TrimRight(ParseString("TICKER_ESPN_BASE", cfg.ESPNBaseURL), "/")
	cfg.ESPNTimeout = ParseDuration("TICKER_ESPN_TIMEOUT", cfg.ESPNTimeout)
	cfg.UpstreamRPS = ParseFloat("TICKER_UPSTREAM_RPS", cfg.UpstreamRPS)
	cfg.UpstreamBurst = ParseInt("TICKER_UPSTREAM_BURST", cfg.UpstreamBurst)
	cfg.BreakerThreshold = ParseInt("TICKER_BREAKER_THRESHOLD", cfg.BreakerThreshold)
	cfg.BreakerReset = ParseDuration("TICKER_BREAKER_RESET", cfg.BreakerReset)

	cfg.CacheTTL = ParseDuration("TICKER_CACHE_TTL", cfg.CacheTTL)
	cfg.RedisAddr = ParseString("TICKER_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = ParseString("TICKER_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = ParseInt("TICKER_REDIS_DB", cfg.RedisDB)

	cfg.LogoDir = ParseString("TICKER_LOGO_DIR", cfg.LogoDir)

	cfg.DisplayDriver = ParseString("TICKER_DISPLAY", cfg.DisplayDriver)
	cfg.SerialPort = ParseString("TICKER_SERIAL_PORT", cfg.SerialPort)
	cfg.SerialBaud = ParseInt("TICKER_SERIAL_BAUD", cfg.SerialBaud)
	cfg.FramePath = ParseString("TICKER_FRAME_PATH", cfg.FramePath)

	cfg.APIListenAddr = ParseString("TICKER_LISTEN", cfg.APIListenAddr)
	cfg.APIToken = ParseString("TICKER_API_TOKEN", cfg.APIToken)
	cfg.AuthAnonymous = ParseBool("TICKER_AUTH_ANONYMOUS", cfg.AuthAnonymous)
	cfg.RateLimitRPS = ParseInt("TICKER_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = ParseInt("TICKER_RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.MaxConns = ParseInt("TICKER_MAX_CONNS", cfg.MaxConns)

	cfg.MetricsAddr = ParseString("TICKER_METRICS_LISTEN", cfg.MetricsAddr)
	cfg.OTLPEndpoint = ParseString("TICKER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.LogLevel = ParseString("TICKER_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

func lookupNonEmpty(key string) (string, bool) {
	v := ParseString(key, "")
	return v, strings.TrimSpace(v) != ""
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
