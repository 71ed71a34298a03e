package memory

import (
	"context"
	"sort"
	"sync"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

type patternKey struct {
	ownerUserID string
	pattern     valueobjects.ThoughtType
}

// PatternStore is a thread-safe in-memory PatternStore
type PatternStore struct {
	mu      sync.RWMutex
	records map[patternKey]*entities.PatternRecord
}

// NewPatternStore creates an empty in-memory pattern store
func NewPatternStore() *PatternStore {
	return &PatternStore{
		records: make(map[patternKey]*entities.PatternRecord),
	}
}

// FindByOwnerAndPattern retrieves the record for one pattern type
func (s *PatternStore) FindByOwnerAndPattern(
	ctx context.Context,
	ownerUserID string,
	pattern valueobjects.ThoughtType,
) (*entities.PatternRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[patternKey{ownerUserID, pattern}]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("pattern")
	}
	return record, nil
}

// ListRecent retrieves a user's most recently updated records
func (s *PatternStore) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*entities.PatternRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.PatternRecord
	for key, record := range s.records {
		if key.ownerUserID == ownerUserID {
			out = append(out, record)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt().After(out[j].UpdatedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Upsert creates or replaces a record
func (s *PatternStore) Upsert(ctx context.Context, record *entities.PatternRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[patternKey{record.OwnerUserID(), record.ThoughtPattern()}] = record
	return nil
}

var _ ports.PatternStore = (*PatternStore)(nil)
