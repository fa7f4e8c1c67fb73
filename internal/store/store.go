// Package store persists decode history: one summary row per decoded
// replay, in a local sqlite database. Full results are not stored; the
// history exists so batch runs and the HTTP service can be audited later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Entry is one decode-history row.
type Entry struct {
	ID          string             `json:"id"`
	File        string             `json:"file"`
	MapName     string             `json:"map_name"`
	Players     []string           `json:"players"`
	Frames      uint32             `json:"frames"`
	Commands    int                `json:"commands"`
	Reliability string             `json:"reliability"`
	APM         map[string]float64 `json:"apm"`
	CreatedAt   time.Time          `json:"created_at"`
}

// History is a sqlite-backed decode history.
type History struct {
	db     *sql.DB
	closed bool
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decodes (
		id TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		map_name TEXT NOT NULL,
		players_json TEXT NOT NULL,
		frames INTEGER NOT NULL,
		commands INTEGER NOT NULL,
		reliability TEXT NOT NULL,
		apm_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decodes_created ON decodes(created_at DESC);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (h *History) Close() error {
	h.closed = true
	return h.db.Close()
}

// Save stores one entry. A missing ID is assigned a fresh ULID; a zero
// CreatedAt is stamped with the current time.
func (h *History) Save(ctx context.Context, e *Entry) error {
	if h.closed {
		return ErrClosed
	}
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	playersJSON, err := json.Marshal(e.Players)
	if err != nil {
		return fmt.Errorf("encoding players: %w", err)
	}
	apmJSON, err := json.Marshal(e.APM)
	if err != nil {
		return fmt.Errorf("encoding apm: %w", err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO decodes (id, file, map_name, players_json, frames, commands, reliability, apm_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.File, e.MapName, playersJSON, e.Frames, e.Commands, e.Reliability, apmJSON, e.CreatedAt)
	return err
}

// Get retrieves one entry by ID.
func (h *History) Get(ctx context.Context, id string) (*Entry, error) {
	if h.closed {
		return nil, ErrClosed
	}
	if id == "" {
		return nil, ErrInvalidID
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, file, map_name, players_json, frames, commands, reliability, apm_json, created_at
		FROM decodes WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	return e, err
}

// List returns the most recent entries, newest first.
func (h *History) List(ctx context.Context, limit int) ([]*Entry, error) {
	if h.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, file, map_name, players_json, frames, commands, reliability, apm_json, created_at
		FROM decodes ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var playersJSON, apmJSON string
	err := s.Scan(&e.ID, &e.File, &e.MapName, &playersJSON, &e.Frames, &e.Commands, &e.Reliability, &apmJSON, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(playersJSON), &e.Players)
	json.Unmarshal([]byte(apmJSON), &e.APM)
	return &e, nil
}
