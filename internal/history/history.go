// SPDX-License-Identifier: MIT

// Package history archives final scores in an embedded sqlite database.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/scoreticker/internal/game"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists final games.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// sqlite tolerates exactly one writer.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func applyMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("build migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Entry is one archived final.
type Entry struct {
	EventID    string    `json:"event_id"`
	League     string    `json:"league"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  string    `json:"home_score"`
	AwayScore  string    `json:"away_score"`
	StartTime  time.Time `json:"start_time"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordFinals inserts every final game that is not already archived and
// returns the number of newly recorded games. Non-final games are skipped.
func (s *Store) RecordFinals(ctx context.Context, games []game.Game) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO games
			(event_id, league, home_team, away_team, home_score, away_score, start_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	recorded := 0
	for _, g := range games {
		if !g.IsFinal || g.EventID == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx,
			g.EventID, g.League, g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, g.StartTime)
		if err != nil {
			return recorded, fmt.Errorf("record %s: %w", g.EventID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			recorded += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return recorded, fmt.Errorf("commit: %w", err)
	}
	return recorded, nil
}

// Recent returns the most recently archived finals, optionally filtered by
// league.
func (s *Store) Recent(ctx context.Context, league string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT event_id, league, home_team, away_team, home_score, away_score,
		       start_time, recorded_at
		FROM games`
	args := []any{}
	if league != "" {
		query += " WHERE league = ?"
		args = append(args, league)
	}
	query += " ORDER BY recorded_at DESC, event_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var start sql.NullTime
		if err := rows.Scan(&e.EventID, &e.League, &e.HomeTeam, &e.AwayTeam,
			&e.HomeScore, &e.AwayScore, &start, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if start.Valid {
			e.StartTime = start.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of archived games.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM games").Scan(&n)
	return n, err
}
