// SPDX-License-Identifier: MIT

// Package logo resolves and caches team logos for the card renderer.
package logo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/courtside/scoreticker/internal/metrics"
	"github.com/courtside/scoreticker/internal/render"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	// BMP registration: local logo packs ship the firmware's .bmp assets.
	_ "golang.org/x/image/bmp"
)

// StoreOptions configures the logo store.
type StoreOptions struct {
	// AssetDir holds operator-provided logos: {AssetDir}/{league}/{slug}.bmp
	// (or .png). Takes precedence over everything else.
	AssetDir string
	// CachePath is the badger directory for logos fetched from the upstream
	// CDN. Empty disables the persistent cache.
	CachePath string
	// FetchTimeout bounds one CDN download (default 10s).
	FetchTimeout time.Duration
	// CacheTTL bounds how long a fetched logo stays valid (default 30 days;
	// teams redesign rarely).
	CacheTTL time.Duration

	Logger zerolog.Logger
}

// Store resolves logos from the local asset dir, the persistent cache, or
// the upstream CDN, in that order. Decoded logos are kept in memory for the
// lifetime of the store.
type Store struct {
	opts StoreOptions
	db   *badger.DB
	http *http.Client

	mu      sync.RWMutex
	decoded map[string]image.Image // key -> scaled logo; nil means known-missing
}

// NewStore opens the logo store. The badger cache is optional; a store
// without one still serves local assets and uncached CDN fetches.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * 24 * time.Hour
	}

	var db *badger.DB
	if opts.CachePath != "" {
		badgerOpts := badger.DefaultOptions(opts.CachePath).WithLogger(nil)
		var err error
		db, err = badger.Open(badgerOpts)
		if err != nil {
			return nil, fmt.Errorf("open logo cache: %w", err)
		}
	}

	return &Store{
		opts:    opts,
		db:      db,
		http:    &http.Client{Timeout: opts.FetchTimeout},
		decoded: make(map[string]image.Image),
	}, nil
}

// Close releases the persistent cache.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Logo returns the scaled logo for a team, or nil when none can be resolved.
// A nil logo is not an error; the card renders without it.
func (s *Store) Logo(ctx context.Context, league, slug, cdnURL string) image.Image {
	key := league + "/" + slug

	s.mu.RLock()
	img, seen := s.decoded[key]
	s.mu.RUnlock()
	if seen {
		return img
	}

	img = s.resolve(ctx, league, slug, cdnURL)

	s.mu.Lock()
	s.decoded[key] = img
	s.mu.Unlock()
	return img
}

// Forget drops the in-memory entry for a team so the next Logo call
// re-resolves it.
func (s *Store) Forget(league, slug string) {
	s.mu.Lock()
	delete(s.decoded, league+"/"+slug)
	s.mu.Unlock()
}

func (s *Store) resolve(ctx context.Context, league, slug, cdnURL string) image.Image {
	logger := s.opts.Logger.With().Str("league", league).Str("team", slug).Logger()

	if img := s.fromAssetDir(league, slug); img != nil {
		metrics.IncLogoFetch("local")
		return img
	}

	key := []byte(league + "/" + slug)
	if img := s.fromCache(key); img != nil {
		metrics.IncLogoFetch("cached")
		return img
	}

	if cdnURL == "" {
		metrics.IncLogoFetch("failure")
		return nil
	}

	img, raw, err := s.fetch(ctx, cdnURL)
	if err != nil {
		logger.Warn().Err(err).Str("event", "logo.fetch_failed").Str("url", cdnURL).Msg("logo fetch failed")
		metrics.IncLogoFetch("failure")
		return nil
	}

	s.toCache(key, raw, logger)
	metrics.IncLogoFetch("fetched")
	return img
}

// fromAssetDir checks the operator-provided logo pack.
func (s *Store) fromAssetDir(league, slug string) image.Image {
	if s.opts.AssetDir == "" {
		return nil
	}
	for _, ext := range []string{".bmp", ".png"} {
		path := filepath.Join(s.opts.AssetDir, league, slug+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			s.opts.Logger.Warn().Err(err).Str("path", path).Msg("undecodable local logo")
			continue
		}
		return scale(img)
	}
	return nil
}

func (s *Store) fromCache(key []byte) image.Image {
	if s.db == nil {
		return nil
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// toCache stores the scaled logo as PNG with a TTL.
func (s *Store) toCache(key []byte, data []byte, logger zerolog.Logger) {
	if s.db == nil {
		return
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data).WithTTL(s.opts.CacheTTL)
		return txn.SetEntry(entry)
	})
	if err != nil {
		logger.Warn().Err(err).Str("event", "logo.cache_write_failed").Msg("logo cache write failed")
	}
}

// fetch downloads and normalizes one logo. It returns the scaled image plus
// its PNG encoding for the persistent cache.
func (s *Store) fetch(ctx context.Context, url string) (image.Image, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("logo fetch: HTTP %d", res.StatusCode)
	}

	// CDN logos are small; cap the read anyway.
	body, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return nil, nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("decode logo: %w", err)
	}

	scaled := scale(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, nil, err
	}
	return scaled, buf.Bytes(), nil
}

// scale normalizes a logo to the card's logo size with hard pixel edges.
func scale(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == render.LogoSize && b.Dy() == render.LogoSize {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, render.LogoSize, render.LogoSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
