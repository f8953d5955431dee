// Package store handles SQLite persistence of presentation history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wrapdeck/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for presentation and export history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS presentations (
			id TEXT PRIMARY KEY,
			dataset_path TEXT NOT NULL,
			chat_name TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			slides_viewed INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			presentation_id TEXT NOT NULL,
			path TEXT NOT NULL,
			shared INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_presentations_started_at ON presentations(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// StartPresentation records a newly opened deck.
func (s *Store) StartPresentation(ctx context.Context, rec model.PresentationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presentations (id, dataset_path, chat_name, started_at)
		 VALUES (?, ?, ?, ?)`,
		rec.ID,
		rec.DatasetPath,
		rec.ChatName,
		rec.StartedAt.Format(time.RFC3339Nano),
	)
	return err
}

// FinishPresentation stores how far a deck was played.
func (s *Store) FinishPresentation(ctx context.Context, id string, endedAt time.Time, slidesViewed int, completed bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE presentations SET ended_at = ?, slides_viewed = ?, completed = ? WHERE id = ?`,
		endedAt.Format(time.RFC3339Nano),
		slidesViewed,
		boolToInt(completed),
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("presentation %q not found", id)
	}
	return nil
}

// InsertExport records an exported card.
func (s *Store) InsertExport(ctx context.Context, rec model.ExportRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, presentation_id, path, shared, bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.PresentationID,
		rec.Path,
		boolToInt(rec.Shared),
		rec.Bytes,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListPresentations returns the most recent presentations, newest first.
func (s *Store) ListPresentations(ctx context.Context, limit int) ([]model.PresentationRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset_path, chat_name, started_at, COALESCE(ended_at, ''), slides_viewed, completed
		 FROM presentations
		 ORDER BY started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.PresentationRecord
	for rows.Next() {
		var rec model.PresentationRecord
		var startedAt, endedAt string
		var completed int
		if err := rows.Scan(&rec.ID, &rec.DatasetPath, &rec.ChatName, &startedAt, &endedAt, &rec.SlidesViewed, &completed); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if endedAt != "" {
			if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
				return nil, err
			}
		}
		rec.Completed = completed != 0
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListExports returns the most recent exports, newest first.
func (s *Store) ListExports(ctx context.Context, limit int) ([]model.ExportRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, presentation_id, path, shared, bytes, created_at
		 FROM exports
		 ORDER BY created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ExportRecord
	for rows.Next() {
		var rec model.ExportRecord
		var createdAt string
		var shared int
		if err := rows.Scan(&rec.ID, &rec.PresentationID, &rec.Path, &shared, &rec.Bytes, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Shared = shared != 0
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
