// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func finals() []game.Game {
	start, _ := time.Parse(time.RFC3339, "2026-01-11T00:00:00Z")
	return []game.Game{
		{EventID: "1", League: "NHL", HomeTeam: "BOS", AwayTeam: "MTL", HomeScore: "4", AwayScore: "2", IsFinal: true, StartTime: start},
		{EventID: "2", League: "NBA", HomeTeam: "BOS", AwayTeam: "LAL", HomeScore: "110", AwayScore: "104", IsFinal: true, StartTime: start},
		{EventID: "3", League: "NHL", HomeTeam: "NYR", AwayTeam: "PIT", HomeScore: "1", AwayScore: "1", IsLive: true},
	}
}

func TestRecordFinalsSkipsNonFinal(t *testing.T) {
	s := newTestStore(t)

	n, err := s.RecordFinals(context.Background(), finals())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "live game is not archived")

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecordFinalsIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RecordFinals(context.Background(), finals())
	require.NoError(t, err)

	n, err := s.RecordFinals(context.Background(), finals())
	require.NoError(t, err)
	assert.Zero(t, n, "second refresh records nothing new")
}

func TestRecentFiltersByLeague(t *testing.T) {
	s := newTestStore(t)
	_, err := s.RecordFinals(context.Background(), finals())
	require.NoError(t, err)

	all, err := s.Recent(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	nhl, err := s.Recent(context.Background(), "NHL", 10)
	require.NoError(t, err)
	require.Len(t, nhl, 1)
	assert.Equal(t, "BOS", nhl[0].HomeTeam)
	assert.Equal(t, "4", nhl[0].HomeScore)
	assert.False(t, nhl[0].RecordedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)

	games := make([]game.Game, 0, 10)
	for i := 0; i < 10; i++ {
		games = append(games, game.Game{
			EventID:  string(rune('a' + i)),
			League:   "NHL",
			HomeTeam: "H", AwayTeam: "A",
			HomeScore: "1", AwayScore: "0",
			IsFinal: true,
		})
	}
	_, err := s.RecordFinals(context.Background(), games)
	require.NoError(t, err)

	got, err := s.Recent(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestOpenIsReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening an already-migrated database must be a no-op migration.
	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}
