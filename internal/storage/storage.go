// Package storage defines persistence for completed symptom analyses. Each
// record feeds the patient's health-record timeline; the transient
// orchestration objects themselves are never stored.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("analysis record not found")

// AnalysisRecord is a persisted symptom analysis.
type AnalysisRecord struct {
	ID                 string    `json:"id"`
	OriginalText       string    `json:"original_text"`
	TranslatedText     string    `json:"translated_text"`
	DetectedLanguage   string    `json:"detected_language"`
	Analysis           string    `json:"analysis"`
	TranslatedAnalysis string    `json:"translated_analysis"`
	CreatedAt          time.Time `json:"created_at"`
}

// AnalysisStore persists and retrieves analysis records.
type AnalysisStore interface {
	// SaveAnalysis stores a record. The caller assigns ID and CreatedAt.
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error

	// GetAnalysis retrieves a record by ID, or ErrNotFound.
	GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error)

	// ListAnalyses returns up to limit records, newest first.
	ListAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error)

	// Close releases the store's resources.
	Close() error
}
