// Package memory provides an in-memory AnalysisStore for development and
// tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/enabha/assist/internal/storage"
)

// Store is an in-memory implementation of storage.AnalysisStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]*storage.AnalysisRecord
}

var _ storage.AnalysisStore = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]*storage.AnalysisRecord),
	}
}

// SaveAnalysis stores a record.
func (s *Store) SaveAnalysis(ctx context.Context, rec *storage.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// GetAnalysis retrieves a record by ID.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*storage.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// ListAnalyses returns up to limit records, newest first.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]*storage.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.AnalysisRecord, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
