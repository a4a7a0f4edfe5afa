// SPDX-License-Identifier: MIT

package config

import "time"

// ServerConfig holds HTTP server timeouts shared by the API and metrics
// listeners.
type ServerConfig struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultMaxHeaderBytes  = 1 << 20 // 1 MB
	defaultShutdownTimeout = 15 * time.Second
	minShutdownTimeout     = 3 * time.Second
)

// ParseServerConfigForApp resolves server settings with the precedence
// ENV > AppConfig > built-in default.
func ParseServerConfigForApp(cfg AppConfig) ServerConfig {
	shutdown := ParseDuration("TICKER_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if shutdown < minShutdownTimeout {
		shutdown = minShutdownTimeout
	}

	maxHeaderBytes := ParseInt("TICKER_SERVER_MAX_HEADER_BYTES", defaultMaxHeaderBytes)
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = defaultMaxHeaderBytes
	}

	return ServerConfig{
		ListenAddr:      cfg.APIListenAddr,
		ReadTimeout:     ParseDuration("TICKER_SERVER_READ_TIMEOUT", defaultReadTimeout),
		WriteTimeout:    ParseDuration("TICKER_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
		IdleTimeout:     ParseDuration("TICKER_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		MaxHeaderBytes:  maxHeaderBytes,
		ShutdownTimeout: shutdown,
	}
}
