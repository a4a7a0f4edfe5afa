// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML schema of an optional config file. Every field is
// optional; zero values leave the corresponding default untouched.
type FileConfig struct {
	DataDir        string   `yaml:"dataDir"`
	Leagues        []string `yaml:"leagues"`
	FetchInterval  string   `yaml:"fetchInterval"`
	RotateInterval string   `yaml:"rotateInterval"`

	Timezone struct {
		OffsetHours *int   `yaml:"offsetHours"`
		Name        string `yaml:"name"`
	} `yaml:"timezone"`

	ESPN struct {
		BaseURL          string  `yaml:"baseURL"`
		Timeout          string  `yaml:"timeout"`
		RPS              float64 `yaml:"rps"`
		Burst            int     `yaml:"burst"`
		BreakerThreshold int     `yaml:"breakerThreshold"`
		BreakerReset     string  `yaml:"breakerReset"`
	} `yaml:"espn"`

	CacheTTL string `yaml:"cacheTTL"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	LogoDir string `yaml:"logoDir"`

	Display struct {
		Driver     string `yaml:"driver"`
		SerialPort string `yaml:"serialPort"`
		SerialBaud int    `yaml:"serialBaud"`
		FramePath  string `yaml:"framePath"`
	} `yaml:"display"`

	API struct {
		ListenAddr     string `yaml:"listenAddr"`
		Token          string `yaml:"token"`
		Anonymous      *bool  `yaml:"anonymous"`
		RateLimitRPS   int    `yaml:"rateLimitRPS"`
		RateLimitBurst int    `yaml:"rateLimitBurst"`
		MaxConns       int    `yaml:"maxConns"`
	} `yaml:"api"`

	MetricsAddr  string `yaml:"metricsAddr"`
	OTLPEndpoint string `yaml:"otlpEndpoint"`
	LogLevel     string `yaml:"logLevel"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// merge applies the file values on top of cfg. ENV is applied afterwards by
// the loader and wins over both.
func (fc FileConfig) merge(cfg AppConfig) (AppConfig, error) {
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if len(fc.Leagues) > 0 {
		leagues, err := parseLeagues(fc.Leagues)
		if err != nil {
			return cfg, err
		}
		cfg.Leagues = leagues
	}
	var err error
	if cfg.FetchInterval, err = mergeDuration(fc.FetchInterval, cfg.FetchInterval); err != nil {
		return cfg, fmt.Errorf("fetchInterval: %w", err)
	}
	if cfg.RotateInterval, err = mergeDuration(fc.RotateInterval, cfg.RotateInterval); err != nil {
		return cfg, fmt.Errorf("rotateInterval: %w", err)
	}
	if fc.Timezone.OffsetHours != nil {
		cfg.TZOffsetHours = *fc.Timezone.OffsetHours
	}
	if fc.Timezone.Name != "" {
		cfg.TZName = fc.Timezone.Name
	}
	if fc.ESPN.BaseURL != "" {
		cfg.ESPNBaseURL = fc.ESPN.BaseURL
	}
	if cfg.ESPNTimeout, err = mergeDuration(fc.ESPN.Timeout, cfg.ESPNTimeout); err != nil {
		return cfg, fmt.Errorf("espn.timeout: %w", err)
	}
	if fc.ESPN.RPS > 0 {
		cfg.UpstreamRPS = fc.ESPN.RPS
	}
	if fc.ESPN.Burst > 0 {
		cfg.UpstreamBurst = fc.ESPN.Burst
	}
	if fc.ESPN.BreakerThreshold > 0 {
		cfg.BreakerThreshold = fc.ESPN.BreakerThreshold
	}
	if cfg.BreakerReset, err = mergeDuration(fc.ESPN.BreakerReset, cfg.BreakerReset); err != nil {
		return cfg, fmt.Errorf("espn.breakerReset: %w", err)
	}
	if cfg.CacheTTL, err = mergeDuration(fc.CacheTTL, cfg.CacheTTL); err != nil {
		return cfg, fmt.Errorf("cacheTTL: %w", err)
	}
	if fc.Redis.Addr != "" {
		cfg.RedisAddr = fc.Redis.Addr
	}
	if fc.Redis.Password != "" {
		cfg.RedisPassword = fc.Redis.Password
	}
	if fc.Redis.DB != 0 {
		cfg.RedisDB = fc.Redis.DB
	}
	if fc.LogoDir != "" {
		cfg.LogoDir = fc.LogoDir
	}
	if fc.Display.Driver != "" {
		cfg.DisplayDriver = fc.Display.Driver
	}
	if fc.Display.SerialPort != "" {
		cfg.SerialPort = fc.Display.SerialPort
	}
	if fc.Display.SerialBaud > 0 {
		cfg.SerialBaud = fc.Display.SerialBaud
	}
	if fc.Display.FramePath != "" {
		cfg.FramePath = fc.Display.FramePath
	}
	if fc.API.ListenAddr != "" {
		cfg.APIListenAddr = fc.API.ListenAddr
	}
	if fc.API.Token != "" {
		cfg.APIToken = fc.API.Token
	}
	if fc.API.Anonymous != nil {
		cfg.AuthAnonymous = *fc.API.Anonymous
	}
	if fc.API.RateLimitRPS > 0 {
		cfg.RateLimitRPS = fc.API.RateLimitRPS
	}
	if fc.API.RateLimitBurst > 0 {
		cfg.RateLimitBurst = fc.API.RateLimitBurst
	}
	if fc.API.MaxConns > 0 {
		cfg.MaxConns = fc.API.MaxConns
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
	if fc.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = fc.OTLPEndpoint
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return cfg, nil
}

func mergeDuration(raw string, current time.Duration) (time.Duration, error) {
	if raw == "" {
		return current, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return current, err
	}
	return d, nil
}

func parseLeagues(names []string) ([]game.League, error) {
	leagues := make([]game.League, 0, len(names))
	for _, name := range names {
		l, err := game.LeagueByName(name)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}
