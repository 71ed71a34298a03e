// Package memory provides in-memory implementations of the persistence
// ports for local development and tests.
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

// SessionStore is a thread-safe in-memory SessionStore
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entities.Session),
	}
}

// Get retrieves a session by id
func (s *SessionStore) Get(ctx context.Context, id valueobjects.SessionID) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("session")
	}
	return session, nil
}

// Save persists a session
func (s *SessionStore) Save(ctx context.Context, session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID().String()] = session
	return nil
}

// ListByOwner retrieves a user's sessions, most recently updated first
func (s *SessionStore) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.Session
	for _, session := range s.sessions {
		if session.OwnerUserID() == ownerUserID {
			out = append(out, session)
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

var _ ports.SessionStore = (*SessionStore)(nil)
