// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/courtside/scoreticker/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ApplySafe overlays the hot-reloadable subset of next onto current.
// Listen addresses, storage paths and display wiring require a restart and
// are deliberately kept from current.
func ApplySafe(current, next AppConfig) AppConfig {
	current.Leagues = next.Leagues
	current.FetchInterval = next.FetchInterval
	current.RotateInterval = next.RotateInterval
	current.TZOffsetHours = next.TZOffsetHours
	current.TZName = next.TZName
	current.CacheTTL = next.CacheTTL
	current.LogLevel = next.LogLevel
	current.RateLimitRPS = next.RateLimitRPS
	current.RateLimitBurst = next.RateLimitBurst
	return current
}

// Watcher re-resolves configuration when the config file changes or the
// process receives SIGHUP, and hands the safe subset to the callback.
type Watcher struct {
	filePath string
	version  string
	current  AppConfig
	onChange func(AppConfig)
}

// NewWatcher builds a watcher for filePath. onChange receives the merged
// config (current with the safe subset of the reloaded one applied).
func NewWatcher(filePath, version string, current AppConfig, onChange func(AppConfig)) *Watcher {
	return &Watcher{filePath: filePath, version: version, current: current, onChange: onChange}
}

// Run blocks until ctx is cancelled. Editors replace files instead of
// writing in place, so the parent directory is watched and events are
// debounced before a reload.
func (w *Watcher) Run(ctx context.Context) error {
	logger := log.WithComponent("config")

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	var events chan fsnotify.Event
	if w.filePath != "" {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer func() { _ = fsw.Close() }()
		if err := fsw.Add(filepath.Dir(w.filePath)); err != nil {
			return err
		}
		events = make(chan fsnotify.Event, 1)
		go forwardFileEvents(ctx, fsw, w.filePath, events)
	}

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hup:
			logger.Info().Str("event", "config.reload.signal").Msg("SIGHUP received")
			w.reload(logger)
		case <-events:
			if debounce == nil {
				debounce = time.NewTimer(250 * time.Millisecond)
			} else {
				debounce.Reset(250 * time.Millisecond)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			logger.Info().Str("event", "config.reload.file").Str("path", w.filePath).Msg("config file changed")
			w.reload(logger)
		}
	}
}

func (w *Watcher) reload(logger zerolog.Logger) {
	next, err := Load(w.filePath, w.version)
	if err != nil {
		logger.Error().Err(err).Str("event", "config.reload.failed").Msg("keeping previous configuration")
		return
	}
	w.current = ApplySafe(w.current, next)
	w.onChange(w.current)
}

func forwardFileEvents(ctx context.Context, fsw *fsnotify.Watcher, path string, out chan<- fsnotify.Event) {
	base := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case out <- ev:
			default:
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger := log.WithComponent("config")
			logger.Warn().Err(err).Msg("config watch error")
		}
	}
}
