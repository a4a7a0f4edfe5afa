// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBase() AppConfig {
	cfg := Defaults()
	cfg.AuthAnonymous = true
	return cfg
}

func TestDefaultsAreValidWithAnonymousAuth(t *testing.T) {
	assert.NoError(t, validBase().Validate())
}

func TestValidateRejectsMissingToken(t *testing.T) {
	cfg := Defaults()
	cfg.APIToken = ""
	cfg.AuthAnonymous = false
	assert.ErrorContains(t, cfg.Validate(), "api token")
}

func TestValidateRejectsShortIntervals(t *testing.T) {
	cfg := validBase()
	cfg.FetchInterval = 5 * time.Second
	assert.ErrorContains(t, cfg.Validate(), "fetch interval")

	cfg = validBase()
	cfg.RotateInterval = 100 * time.Millisecond
	assert.ErrorContains(t, cfg.Validate(), "rotate interval")
}

func TestValidateRejectsSerialWithoutPort(t *testing.T) {
	cfg := validBase()
	cfg.DisplayDriver = "serial"
	assert.ErrorContains(t, cfg.Validate(), "serial")
}

func TestValidateRejectsOffsetOutOfRange(t *testing.T) {
	cfg := validBase()
	cfg.TZOffsetHours = 20
	assert.ErrorContains(t, cfg.Validate(), "tz offset")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ticker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
leagues: [nhl, nba]
fetchInterval: 10m
rotateInterval: 7s
timezone:
  offsetHours: -8
  name: PST
api:
  anonymous: true
`), 0o600))

	t.Setenv("TICKER_FETCH_INTERVAL", "2m")
	t.Setenv("TICKER_TZ_NAME", "PDT")

	cfg, err := Load(path, "test")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.FetchInterval, "env wins over file")
	assert.Equal(t, 7*time.Second, cfg.RotateInterval, "file wins over default")
	assert.Equal(t, -8, cfg.TZOffsetHours)
	assert.Equal(t, "PDT", cfg.TZName)
	require.Len(t, cfg.Leagues, 2)
	assert.Equal(t, "nhl", cfg.Leagues[0].Name)
	assert.Equal(t, "basketball", cfg.Leagues[1].Sport)
}

func TestLoadRejectsUnknownLeague(t *testing.T) {
	t.Setenv("TICKER_LEAGUES", "nhl,curling")
	t.Setenv("TICKER_AUTH_ANONYMOUS", "true")

	_, err := Load("", "test")
	assert.ErrorContains(t, err, "curling")
}

func TestLoadRejectsUnknownYAMLKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetchintervall: 10m\n"), 0o600))

	_, err := Load(path, "test")
	assert.Error(t, err)
}

func TestLoadTrimsBaseURLSlash(t *testing.T) {
	t.Setenv("TICKER_ESPN_BASE", "https://example.test/")
	t.Setenv("TICKER_AUTH_ANONYMOUS", "1")

	cfg, err := Load("", "test")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.ESPNBaseURL)
}

func TestParseHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("TICKER_TEST_INT", "not-a-number")
	t.Setenv("TICKER_TEST_DUR", "soon")
	t.Setenv("TICKER_TEST_BOOL", "maybe")
	t.Setenv("TICKER_TEST_FLOAT", "fast")

	assert.Equal(t, 7, ParseInt("TICKER_TEST_INT", 7))
	assert.Equal(t, time.Minute, ParseDuration("TICKER_TEST_DUR", time.Minute))
	assert.True(t, ParseBool("TICKER_TEST_BOOL", true))
	assert.Equal(t, 1.5, ParseFloat("TICKER_TEST_FLOAT", 1.5))
}

func TestApplySafeKeepsRestartOnlyFields(t *testing.T) {
	current := validBase()
	current.APIListenAddr = ":8080"
	current.DataDir = "/data/a"

	next := validBase()
	next.APIListenAddr = ":9999"
	next.DataDir = "/data/b"
	next.RotateInterval = 9 * time.Second
	next.LogLevel = "debug"

	merged := ApplySafe(current, next)
	assert.Equal(t, ":8080", merged.APIListenAddr, "listen addr is restart-only")
	assert.Equal(t, "/data/a", merged.DataDir, "data dir is restart-only")
	assert.Equal(t, 9*time.Second, merged.RotateInterval)
	assert.Equal(t, "debug", merged.LogLevel)
}

func TestParseServerConfig(t *testing.T) {
	t.Setenv("TICKER_SERVER_SHUTDOWN_TIMEOUT", "1s")

	cfg := validBase()
	cfg.APIListenAddr = ":8123"
	sc := ParseServerConfigForApp(cfg)

	assert.Equal(t, ":8123", sc.ListenAddr)
	assert.Equal(t, 30*time.Second, sc.ReadTimeout)
	assert.Equal(t, minShutdownTimeout, sc.ShutdownTimeout, "shutdown timeout is clamped")
}

func TestDerivedPaths(t *testing.T) {
	cfg := validBase()
	cfg.DataDir = "/srv/ticker"

	assert.Equal(t, "/srv/ticker/games.json", cfg.SnapshotPath())
	assert.Equal(t, "/srv/ticker/logos.cache", cfg.LogoCachePath())
	assert.Equal(t, "/srv/ticker/history.db", cfg.HistoryPath())
	assert.Equal(t, "/srv/ticker/frame.png", cfg.ResolvedFramePath())

	cfg.FramePath = "/tmp/out.png"
	assert.Equal(t, "/tmp/out.png", cfg.ResolvedFramePath())
}
