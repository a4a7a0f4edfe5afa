// SPDX-License-Identifier: MIT

// Package cache caches parsed scoreboard results between refreshes.
package cache

import (
	"sync"
	"time"

	"github.com/courtside/scoreticker/internal/game"
)

// Cache stores parsed game lists keyed by league with per-entry TTL.
type Cache interface {
	// Get retrieves the games cached for a league. ok is false when the key
	// is absent or expired.
	Get(league string) (games []game.Game, ok bool)
	// Set stores the games for a league with the specified TTL.
	Set(league string, games []game.Game, ttl time.Duration)
	// Delete removes one league from the cache.
	Delete(league string)
	// Clear removes all entries.
	Clear()
	// Stats returns cache statistics.
	Stats() Stats
}

// Stats holds cache performance counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Sets        int64
	Evictions   int64
	CurrentSize int
}

type entry struct {
	games      []game.Game
	expiration time.Time
}

func (e *entry) isExpired() bool {
	return time.Now().After(e.expiration)
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   Stats
	janitor *janitor
}

// NewMemory creates an in-memory cache. A positive cleanupInterval starts a
// janitor goroutine that evicts expired entries; Stop shuts it down.
func NewMemory(cleanupInterval time.Duration) Cache {
	c := &memoryCache{
		entries: make(map[string]*entry),
	}
	if cleanupInterval > 0 {
		c.janitor = &janitor{
			interval: cleanupInterval,
			stop:     make(chan struct{}),
		}
		go c.janitor.run(c)
	}
	return c
}

func (c *memoryCache) Get(league string) ([]game.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[league]
	if !found || e.isExpired() {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	out := make([]game.Game, len(e.games))
	copy(out, e.games)
	return out, true
}

func (c *memoryCache) Set(league string, games []game.Game, ttl time.Duration) {
	stored := make([]game.Game, len(games))
	copy(stored, games)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[league] = &entry{
		games:      stored,
		expiration: time.Now().Add(ttl),
	}
	c.stats.Sets++
}

func (c *memoryCache) Delete(league string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, league)
}

func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

func (c *memoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

func (c *memoryCache) deleteExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for league, e := range c.entries {
		if e.isExpired() {
			delete(c.entries, league)
			count++
		}
	}
	c.stats.Evictions += int64(count)
	return count
}

// Stop stops the background cleanup goroutine.
func (c *memoryCache) Stop() {
	if c.janitor != nil {
		c.janitor.stop <- struct{}{}
	}
}

type janitor struct {
	interval time.Duration
	stop     chan struct{}
}

func (j *janitor) run(c *memoryCache) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-j.stop:
			return
		}
	}
}

type noOpCache struct{}

// NewNoOp creates a cache that never stores anything.
func NewNoOp() Cache {
	return &noOpCache{}
}

func (c *noOpCache) Get(string) ([]game.Game, bool)            { return nil, false }
func (c *noOpCache) Set(string, []game.Game, time.Duration)    {}
func (c *noOpCache) Delete(string)                             {}
func (c *noOpCache) Clear()                                    {}
func (c *noOpCache) Stats() Stats                              { return Stats{} }
