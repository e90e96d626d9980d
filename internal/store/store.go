// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists recommendation results in a local SQLite database.
// The engine itself never persists anything; the CLI owns the results it
// receives and keeps them here so a recommendation remains auditable after
// the fact.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/salary-engine/pkg/types"
)

const dbFile = "history.db"

// ErrNotFound means no stored recommendation matches the requested ID.
var ErrNotFound = errors.New("recommendation not found")

// Store manages the recommendation history SQLite database.
type Store struct {
	db *sql.DB
}

// Summary is one history listing row.
type Summary struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Target      string    `json:"target" yaml:"target"`
	Currency    string    `json:"currency" yaml:"currency"`
	Band        string    `json:"band" yaml:"band"`
	EvaluatedAt time.Time `json:"evaluated_at" yaml:"evaluated_at"`
}

// Open opens or creates the history database at cfg.DataDir/history.db and
// bootstraps the schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recommendations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			location TEXT,
			grade TEXT,
			currency TEXT NOT NULL,
			target TEXT NOT NULL,
			range_low TEXT NOT NULL,
			range_high TEXT NOT NULL,
			confidence_total REAL NOT NULL,
			confidence_band TEXT NOT NULL,
			source_count INTEGER NOT NULL,
			observation_count INTEGER NOT NULL,
			evaluated_at TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_title ON recommendations(title)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_evaluated_at ON recommendations(evaluated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts one recommendation. Monetary amounts are stored as exact
// decimal strings; the full record is kept as a JSON payload so Get can
// reconstruct it field for field.
func (s *Store) Save(ctx context.Context, result types.RecommendationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding recommendation %s: %w", result.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recommendations
			(id, title, location, grade, currency, target, range_low, range_high,
			 confidence_total, confidence_band, source_count, observation_count,
			 evaluated_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.Query.Title,
		result.Query.Location,
		result.Query.Grade,
		result.Currency,
		result.Target.String(),
		result.Range.Low.String(),
		result.Range.High.String(),
		result.Confidence.Total,
		string(result.Confidence.Band),
		result.SourceCount,
		result.ObservationCount,
		result.EvaluatedAt.UTC().Format(time.RFC3339Nano),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation %s: %w", result.ID, err)
	}
	return nil
}

// List returns history summaries, newest first, up to limit (all when
// limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT id, title, target, currency, confidence_band, evaluated_at
		FROM recommendations ORDER BY evaluated_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recommendations: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var evaluatedAt string
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Target, &sm.Currency, &sm.Band, &evaluatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, evaluatedAt); err == nil {
			sm.EvaluatedAt = ts
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Get reconstructs one stored recommendation from its JSON payload.
func (s *Store) Get(ctx context.Context, id string) (types.RecommendationResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM recommendations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RecommendationResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.RecommendationResult{}, fmt.Errorf("reading recommendation %s: %w", id, err)
	}

	var result types.RecommendationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return types.RecommendationResult{}, fmt.Errorf("decoding recommendation %s: %w", id, err)
	}
	return result, nil
}

// ExportYAML writes one stored recommendation as YAML to w. The record is
// round-tripped through its JSON form so monetary fields export as the
// decimal strings they were stored with.
func (s *Store) ExportYAML(ctx context.Context, id string, w io.Writer) error {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM recommendations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("reading recommendation %s: %w", id, err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return fmt.Errorf("decoding recommendation %s: %w", id, err)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
