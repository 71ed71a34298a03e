package memory

import (
	"context"
	"sync"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/core/entities"
)

type ownedTitle struct {
	userID string
	title  string
}

// ThoughtRepository is a thread-safe in-memory ThoughtRepository. Inserts
// append; titles are returned newest first.
type ThoughtRepository struct {
	mu      sync.RWMutex
	dots    []*entities.Dot
	wheels  []*entities.Wheel
	chakras []*entities.Chakra
	titles  []ownedTitle
}

// NewThoughtRepository creates an empty in-memory thought repository
func NewThoughtRepository() *ThoughtRepository {
	return &ThoughtRepository{}
}

// InsertDot writes a dot and returns its generated id
func (r *ThoughtRepository) InsertDot(ctx context.Context, dot *entities.Dot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dots = append(r.dots, dot)
	r.titles = append(r.titles, ownedTitle{dot.UserID, dot.Summary})
	return dot.ID, nil
}

// InsertWheel writes a wheel and returns its generated id
func (r *ThoughtRepository) InsertWheel(ctx context.Context, wheel *entities.Wheel) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wheels = append(r.wheels, wheel)
	r.titles = append(r.titles, ownedTitle{wheel.UserID, wheel.Name})
	return wheel.ID, nil
}

// InsertChakra writes a chakra and returns its generated id
func (r *ThoughtRepository) InsertChakra(ctx context.Context, chakra *entities.Chakra) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.chakras = append(r.chakras, chakra)
	r.titles = append(r.titles, ownedTitle{chakra.UserID, chakra.Name})
	return chakra.ID, nil
}

// RecentTitles retrieves recent titles for a user, newest first
func (r *ThoughtRepository) RecentTitles(ctx context.Context, ownerUserID string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for i := len(r.titles) - 1; i >= 0; i-- {
		if r.titles[i].userID != ownerUserID {
			continue
		}
		out = append(out, r.titles[i].title)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Dots returns all stored dots, in insertion order
func (r *ThoughtRepository) Dots() []*entities.Dot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Dot, len(r.dots))
	copy(out, r.dots)
	return out
}

// Wheels returns all stored wheels, in insertion order
func (r *ThoughtRepository) Wheels() []*entities.Wheel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Wheel, len(r.wheels))
	copy(out, r.wheels)
	return out
}

// Chakras returns all stored chakras, in insertion order
func (r *ThoughtRepository) Chakras() []*entities.Chakra {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Chakra, len(r.chakras))
	copy(out, r.chakras)
	return out
}

var _ ports.ThoughtRepository = (*ThoughtRepository)(nil)
