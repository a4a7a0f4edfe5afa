// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/scoreticker/internal/cache"
	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/courtside/scoreticker/internal/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of the most recent refresh cycle.
type Status struct {
	LastRun time.Time      `json:"last_run"`
	Games   int            `json:"games"`
	Leagues map[string]int `json:"leagues"`
	// Stale lists leagues that were served from cache because the
	// upstream fetch failed.
	Stale []string `json:"stale,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Config holds the refresh cycle settings.
type Config struct {
	DataDir  string
	Leagues  []game.League
	Timezone game.Timezone
	CacheTTL time.Duration
}

// Archiver records final scores. The history store implements it.
type Archiver interface {
	RecordFinals(ctx context.Context, games []game.Game) (int, error)
}

func validateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("refresh: data dir is required")
	}
	if len(cfg.Leagues) == 0 {
		return fmt.Errorf("refresh: at least one league is required")
	}
	return nil
}

// Refresh fetches every configured league, falls back to cached scoreboards
// on upstream failure, writes the snapshot and archives finals. It fails only
// when no league produced data at all or the snapshot cannot be written.
func Refresh(ctx context.Context, cfg Config, cl espn.ClientInterface, store cache.Cache, archive Archiver) (*Status, []game.Game, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, nil, err
	}
	if store == nil {
		store = cache.NewNoOp()
	}

	ctx = log.ContextWithJobID(ctx, uuid.NewString())
	logger := log.WithComponentFromContext(ctx, "jobs")
	logger.Info().
		Str("event", "refresh.start").
		Int("leagues", len(cfg.Leagues)).
		Msg("starting refresh")

	// Leagues are fetched concurrently; the client's rate limiter still
	// spaces the upstream requests. Results keep the configured order,
	// which is also the rotation order on the display.
	type leagueResult struct {
		games []game.Game
		stale bool
		err   error
	}
	results := make([]leagueResult, len(cfg.Leagues))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, league := range cfg.Leagues {
		g.Go(func() error {
			games, stale, err := fetchLeague(gctx, cfg, cl, store, league)
			results[i] = leagueResult{games: games, stale: stale, err: err}
			return nil
		})
	}
	_ = g.Wait()

	status := &Status{Leagues: make(map[string]int, len(cfg.Leagues))}
	var all []game.Game
	var firstErr error
	succeeded := 0

	for i, league := range cfg.Leagues {
		res := results[i]
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			logger.Error().
				Err(res.err).
				Str("event", "refresh.league_failed").
				Str("league", league.Name).
				Msg("league unavailable, no cached fallback")
			continue
		}
		if res.stale {
			status.Stale = append(status.Stale, league.Name)
		}
		succeeded++
		status.Leagues[league.Name] = len(res.games)
		metrics.RecordGamesCount(league.Name, len(res.games))
		all = append(all, res.games...)
	}

	if succeeded == 0 {
		metrics.IncRefreshFailure("all_leagues")
		return nil, nil, fmt.Errorf("refresh: all leagues failed: %w", firstErr)
	}

	metrics.RecordGamesTotal(len(all))

	if err := writeSnapshot(cfg.DataDir, all); err != nil {
		metrics.IncRefreshFailure("snapshot")
		return nil, nil, err
	}

	if archive != nil {
		if n, err := archive.RecordFinals(ctx, all); err != nil {
			metrics.IncRefreshFailure("archive")
			logger.Warn().
				Err(err).
				Str("event", "history.archive_failed").
				Msg("final scores not archived")
		} else if n > 0 {
			logger.Info().
				Str("event", "history.archived").
				Int("games", n).
				Msg("archived new finals")
		}
	}

	status.LastRun = time.Now()
	status.Games = len(all)
	if firstErr != nil {
		status.Error = firstErr.Error()
	}
	metrics.SetLastRefreshTimestamp(float64(status.LastRun.Unix()))

	logger.Info().
		Str("event", "refresh.success").
		Int("games", status.Games).
		Int("stale_leagues", len(status.Stale)).
		Msg("refresh completed")
	return status, all, nil
}

// fetchLeague returns the fresh scoreboard for one league, or the cached one
// when the upstream is down. stale reports which of the two it is.
func fetchLeague(ctx context.Context, cfg Config, cl espn.ClientInterface, store cache.Cache, league game.League) (games []game.Game, stale bool, err error) {
	logger := log.WithComponentFromContext(ctx, "jobs")

	start := time.Now()
	events, err := cl.Scoreboard(ctx, league)
	metrics.ObserveFetchDuration(league.Name, time.Since(start).Seconds())

	if err != nil {
		metrics.IncRefreshFailure("fetch")
		if cached, ok := store.Get(league.Name); ok {
			metrics.IncCacheOp("hit")
			logger.Warn().
				Err(err).
				Str("event", "refresh.cache_fallback").
				Str("league", league.Name).
				Int("games", len(cached)).
				Msg("serving cached scoreboard")
			return cached, true, nil
		}
		metrics.IncCacheOp("miss")
		return nil, false, fmt.Errorf("scoreboard %s: %w", league.Name, err)
	}

	games = ParseEvents(league, events, cfg.Timezone)
	store.Set(league.Name, games, cfg.CacheTTL)
	metrics.IncCacheOp("store")

	logger.Info().
		Str("event", "refresh.league").
		Str("league", league.Name).
		Int("games", len(games)).
		Msg("scoreboard fetched")
	return games, false, nil
}
