// Package sqlite provides a SQLite-backed AnalysisStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/enabha/assist/internal/storage"
)

// Store is a SQLite implementation of storage.AnalysisStore.
type Store struct {
	db *sql.DB
}

var _ storage.AnalysisStore = (*Store)(nil)

// New creates a new SQLite store at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			original_text TEXT NOT NULL,
			translated_text TEXT NOT NULL,
			detected_language TEXT NOT NULL,
			analysis TEXT NOT NULL,
			translated_analysis TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_language ON analyses(detected_language)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// SaveAnalysis stores a record.
func (s *Store) SaveAnalysis(ctx context.Context, rec *storage.AnalysisRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, original_text, translated_text, detected_language, analysis, translated_analysis, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalText, rec.TranslatedText, rec.DetectedLanguage,
		rec.Analysis, rec.TranslatedAnalysis, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a record by ID.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*storage.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, original_text, translated_text, detected_language, analysis, translated_analysis, created_at
		 FROM analyses WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns up to limit records, newest first.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]*storage.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_text, translated_text, detected_language, analysis, translated_analysis, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []*storage.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*storage.AnalysisRecord, error) {
	var rec storage.AnalysisRecord
	var createdAt string
	if err := row.Scan(&rec.ID, &rec.OriginalText, &rec.TranslatedText,
		&rec.DetectedLanguage, &rec.Analysis, &rec.TranslatedAnalysis, &createdAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}
