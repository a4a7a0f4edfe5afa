// SPDX-License-Identifier: MIT

// Package ticker rotates game cards on the display and keeps them fresh.
package ticker

import (
	"context"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/courtside/scoreticker/internal/display"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/courtside/scoreticker/internal/logo"
	"github.com/courtside/scoreticker/internal/metrics"
	"github.com/courtside/scoreticker/internal/render"
)

// Refresher produces the current list of games, typically by running the
// refresh job.
type Refresher func(ctx context.Context) ([]game.Game, error)

// Options configures the rotation engine.
type Options struct {
	RotateInterval time.Duration
	FetchInterval  time.Duration
	Display        display.Display
	// Logos may be nil; cards then render without team logos.
	Logos *logo.Store
	// InitialGames seeds the board, e.g. from the last snapshot.
	InitialGames []game.Game
}

// Ticker owns the display: it advances through the game list on the rotate
// interval and re-runs the refresher on the fetch interval.
type Ticker struct {
	refresh Refresher
	display display.Display
	logos   *logo.Store

	mu        sync.RWMutex
	rotate    time.Duration
	fetch     time.Duration
	games     []game.Game
	index     int
	refreshed bool
	frame     *image.RGBA
	current   *game.Game
}

// New creates a ticker. The refresher may be nil, in which case only
// SetGames feeds the board.
func New(refresh Refresher, opts Options) *Ticker {
	t := &Ticker{
		refresh: refresh,
		display: opts.Display,
		logos:   opts.Logos,
		rotate:  opts.RotateInterval,
		fetch:   opts.FetchInterval,
	}
	if t.rotate <= 0 {
		t.rotate = 5 * time.Second
	}
	if t.fetch <= 0 {
		t.fetch = 5 * time.Minute
	}
	if len(opts.InitialGames) > 0 {
		t.SetGames(opts.InitialGames)
	}
	return t
}

// SetGames replaces the board and restarts the rotation from the first game.
func (t *Ticker) SetGames(games []game.Game) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.games = append([]game.Game(nil), games...)
	t.index = 0
	t.refreshed = true
}

// Games returns a copy of the current board.
func (t *Ticker) Games() []game.Game {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]game.Game(nil), t.games...)
}

// Current returns the frame on the display and the game it shows. The game
// is nil while a startup or no-games card is up.
func (t *Ticker) Current() (*image.RGBA, *game.Game) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frame, t.current
}

// SetIntervals applies reloaded rotate and fetch intervals. They take effect
// on the next tick.
func (t *Ticker) SetIntervals(rotate, fetch time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rotate > 0 {
		t.rotate = rotate
	}
	if fetch > 0 {
		t.fetch = fetch
	}
}

func (t *Ticker) intervals() (rotate, fetch time.Duration) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rotate, t.fetch
}

// Run drives the display until ctx is cancelled. It never returns early on
// render or display errors; a scoreboard that crashes on a bad frame is
// worse than one that skips it.
func (t *Ticker) Run(ctx context.Context) error {
	logger := log.WithComponent("ticker")

	t.publish(ctx, render.StartupCard(), nil)

	rotate, fetch := t.intervals()
	rotateTimer := time.NewTimer(rotate)
	defer rotateTimer.Stop()
	fetchTimer := time.NewTimer(fetch)
	defer fetchTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("event", "ticker.stop").Msg("rotation stopped")
			return ctx.Err()

		case <-fetchTimer.C:
			if t.refresh != nil {
				games, err := t.refresh(ctx)
				if err != nil {
					logger.Error().Err(err).Str("event", "ticker.refresh_failed").Msg("keeping previous board")
				} else {
					t.SetGames(games)
				}
			}
			_, fetch = t.intervals()
			fetchTimer.Reset(fetch)

		case <-rotateTimer.C:
			t.Advance(ctx)
			rotate, _ = t.intervals()
			rotateTimer.Reset(rotate)
		}
	}
}

// Advance renders the next card and pushes it to the display.
func (t *Ticker) Advance(ctx context.Context) {
	t.mu.Lock()
	if len(t.games) == 0 {
		refreshed := t.refreshed
		t.mu.Unlock()
		if refreshed {
			t.publish(ctx, render.NoGamesCard(), nil)
		} else {
			t.publish(ctx, render.StartupCard(), nil)
		}
		return
	}
	g := t.games[t.index]
	t.index = (t.index + 1) % len(t.games)
	t.mu.Unlock()

	home, away := t.lookupLogos(ctx, g)
	t.publish(ctx, render.GameCard(g, home, away), &g)
}

func (t *Ticker) lookupLogos(ctx context.Context, g game.Game) (home, away image.Image) {
	if t.logos == nil {
		return nil, nil
	}
	league := strings.ToLower(g.League)
	home = t.logos.Logo(ctx, league, logoSlug(g.HomeName, g.HomeTeam), g.HomeLogoURL)
	away = t.logos.Logo(ctx, league, logoSlug(g.AwayName, g.AwayTeam), g.AwayLogoURL)
	return home, away
}

func logoSlug(displayName, abbreviation string) string {
	if displayName != "" {
		return game.Slug(displayName)
	}
	return game.Slug(abbreviation)
}

// publish stores the frame for the API and pushes it to the display.
func (t *Ticker) publish(ctx context.Context, frame *image.RGBA, g *game.Game) {
	metrics.IncFramesRendered()

	t.mu.Lock()
	t.frame = frame
	t.current = g
	t.mu.Unlock()

	if t.display == nil {
		return
	}
	if err := t.display.Show(ctx, frame); err != nil {
		metrics.IncDisplayError(t.display.Name())
		logger := log.WithComponent("ticker")
		logger.Error().
			Err(err).
			Str("event", "display.show_failed").
			Str("driver", t.display.Name()).
			Msg("frame not displayed")
	}
}
