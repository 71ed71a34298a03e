package ports

import (
	"context"

	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/domain/events"
)

// SessionStore defines the interface for session persistence.
// This is a port in hexagonal architecture - the engine doesn't know about
// the implementation. All cross-call conversation state flows through it.
type SessionStore interface {
	// Get retrieves a session by id. Returns a NOT_FOUND application error
	// when the session has never been seen.
	Get(ctx context.Context, id valueobjects.SessionID) (*entities.Session, error)

	// Save persists a session (create or full update)
	Save(ctx context.Context, session *entities.Session) error

	// ListByOwner retrieves a user's sessions, most recently updated first
	ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*entities.Session, error)
}

// PatternStore defines the interface for pattern memory persistence,
// keyed by (user, thoughtPattern)
type PatternStore interface {
	// FindByOwnerAndPattern retrieves the record for one pattern type.
	// Returns a NOT_FOUND application error on first encounter.
	FindByOwnerAndPattern(ctx context.Context, ownerUserID string, pattern valueobjects.ThoughtType) (*entities.PatternRecord, error)

	// ListRecent retrieves a user's most recently updated records
	ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*entities.PatternRecord, error)

	// Upsert creates or replaces a record
	Upsert(ctx context.Context, record *entities.PatternRecord) error
}

// ThoughtRepository defines the interface for the committed output entities
type ThoughtRepository interface {
	// InsertDot writes a dot and returns its generated id
	InsertDot(ctx context.Context, dot *entities.Dot) (string, error)

	// InsertWheel writes a wheel and returns its generated id
	InsertWheel(ctx context.Context, wheel *entities.Wheel) (string, error)

	// InsertChakra writes a chakra and returns its generated id
	InsertChakra(ctx context.Context, chakra *entities.Chakra) (string, error)

	// RecentTitles retrieves recent dot/wheel/chakra titles for a user,
	// used as classification context, not ground truth
	RecentTitles(ctx context.Context, ownerUserID string, limit int) ([]string, error)
}

// Reasoner is the external natural-language capability behind
// classification, dialogue and synthesis. It is treated as unreliable:
// calls may time out or return malformed output, and every caller wraps
// it with a typed fallback.
type Reasoner interface {
	// Complete sends a prompt and returns the raw model output
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
