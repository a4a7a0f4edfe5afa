// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/scoreticker/internal/cache"
	"github.com/courtside/scoreticker/internal/espn"
	"github.com/courtside/scoreticker/internal/game"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTZ = game.Timezone{OffsetHours: -5, Name: "EST"}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DataDir:  t.TempDir(),
		Leagues:  []game.League{{Sport: "hockey", Name: "nhl"}},
		Timezone: testTZ,
		CacheTTL: time.Minute,
	}
}

type archiveRecorder struct {
	recorded []game.Game
}

func (a *archiveRecorder) RecordFinals(_ context.Context, games []game.Game) (int, error) {
	n := 0
	for _, g := range games {
		if g.IsFinal {
			a.recorded = append(a.recorded, g)
			n++
		}
	}
	return n, nil
}

func TestRefreshHappyPath(t *testing.T) {
	mock := espn.NewMockServer()
	defer mock.Close()

	cfg := testConfig(t)
	cl := espn.New(mock.URL, espn.Options{})
	store := cache.NewMemory(0)
	archive := &archiveRecorder{}

	status, games, err := Refresh(context.Background(), cfg, cl, store, archive)
	require.NoError(t, err)

	assert.Equal(t, 3, status.Games)
	assert.Equal(t, 3, status.Leagues["nhl"])
	assert.Empty(t, status.Stale)
	assert.False(t, status.LastRun.IsZero())
	require.Len(t, games, 3)

	byID := make(map[string]game.Game, len(games))
	for _, g := range games {
		byID[g.EventID] = g
	}

	final := byID["401559001"]
	assert.Equal(t, "NHL", final.League)
	assert.Equal(t, "BOS", final.HomeTeam)
	assert.Equal(t, "MTL", final.AwayTeam)
	assert.Equal(t, "4", final.HomeScore)
	assert.Equal(t, "FINAL", final.Status)
	assert.True(t, final.IsFinal)

	live := byID["401559002"]
	assert.Equal(t, "2nd 12:30", live.Status)
	assert.True(t, live.IsLive)

	// 2026-01-12 02:00 UTC at UTC-5 is the evening before.
	scheduled := byID["401559003"]
	assert.Equal(t, "1/11 9:00PM", scheduled.Status)
	assert.True(t, scheduled.IsScheduled)
	assert.Equal(t, "0", scheduled.HomeScore, "missing score defaults to zero")

	require.Len(t, archive.recorded, 1)
	assert.Equal(t, "401559001", archive.recorded[0].EventID)

	snap, err := ReadSnapshot(cfg.DataDir)
	require.NoError(t, err)
	assert.False(t, snap.GeneratedAt.IsZero())
	if diff := cmp.Diff(games, snap.Games, cmpopts.IgnoreFields(game.Game{}, "HomeLogoURL", "AwayLogoURL")); diff != "" {
		t.Errorf("snapshot differs from refresh result (-want +got):\n%s", diff)
	}
}

func TestRefreshFallsBackToCache(t *testing.T) {
	mock := espn.NewMockServer()
	defer mock.Close()

	cfg := testConfig(t)
	cl := espn.New(mock.URL, espn.Options{})
	store := cache.NewMemory(0)

	_, _, err := Refresh(context.Background(), cfg, cl, store, nil)
	require.NoError(t, err)

	mock.ForceStatus("nhl", http.StatusServiceUnavailable)

	status, games, err := Refresh(context.Background(), cfg, cl, store, nil)
	require.NoError(t, err)
	assert.Len(t, games, 3)
	assert.Equal(t, []string{"nhl"}, status.Stale)
}

func TestRefreshFailsWhenNothingAvailable(t *testing.T) {
	mock := espn.NewMockServer()
	defer mock.Close()
	mock.ForceStatus("nhl", http.StatusServiceUnavailable)

	cfg := testConfig(t)
	cl := espn.New(mock.URL, espn.Options{})

	_, _, err := Refresh(context.Background(), cfg, cl, cache.NewMemory(0), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, espn.ErrUpstreamError)

	_, statErr := os.Stat(filepath.Join(cfg.DataDir, SnapshotFile))
	assert.True(t, os.IsNotExist(statErr), "no snapshot on total failure")
}

func TestRefreshPartialFailureKeepsGoodLeagues(t *testing.T) {
	mock := espn.NewMockServer()
	defer mock.Close()
	mock.ForceStatus("nba", http.StatusServiceUnavailable)

	cfg := testConfig(t)
	cfg.Leagues = []game.League{
		{Sport: "hockey", Name: "nhl"},
		{Sport: "basketball", Name: "nba"},
	}
	cl := espn.New(mock.URL, espn.Options{})

	status, games, err := Refresh(context.Background(), cfg, cl, cache.NewMemory(0), nil)
	require.NoError(t, err)
	assert.Len(t, games, 3)
	assert.NotEmpty(t, status.Error, "failed league is reported")
	assert.NotContains(t, status.Leagues, "nba")
}

func TestRefreshValidatesConfig(t *testing.T) {
	_, _, err := Refresh(context.Background(), Config{}, nil, nil, nil)
	assert.Error(t, err)

	_, _, err = Refresh(context.Background(), Config{DataDir: t.TempDir()}, nil, nil, nil)
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	games := []game.Game{{League: "NHL", EventID: "x", HomeTeam: "A", AwayTeam: "B"}}

	require.NoError(t, writeSnapshot(dir, games))

	snap, err := ReadSnapshot(dir)
	require.NoError(t, err)
	require.Len(t, snap.Games, 1)
	assert.Equal(t, "x", snap.Games[0].EventID)
}
