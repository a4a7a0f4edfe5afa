// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/courtside/scoreticker/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedis(RedisConfig{Addr: mr.Addr()}, log.WithComponent("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c := newTestRedis(t)

	_, ok := c.Get("nhl")
	assert.False(t, ok)

	c.Set("nhl", sampleGames(), time.Minute)
	got, ok := c.Get("nhl")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "MTL", got[0].AwayTeam)
	assert.True(t, got[1].IsLive)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestRedisCacheDeleteAndClear(t *testing.T) {
	c := newTestRedis(t)

	c.Set("nhl", sampleGames(), time.Minute)
	c.Set("nba", sampleGames(), time.Minute)

	c.Delete("nhl")
	_, ok := c.Get("nhl")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestRedisCacheHealthCheck(t *testing.T) {
	c := newTestRedis(t)
	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestRedisCacheConnectFailure(t *testing.T) {
	_, err := NewRedis(RedisConfig{Addr: "127.0.0.1:1"}, log.WithComponent("test"))
	assert.Error(t, err)
}
