package events

import (
	"time"
)

// Source identifier attached to published events
const SourceDotSpark = "dotspark.organizer"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// ThoughtCaptured is raised when the organizer commits a dot, wheel or chakra
type ThoughtCaptured struct {
	BaseEvent
	ItemType  string `json:"item_type"` // dot, wheel or chakra
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// NewThoughtCaptured creates a ThoughtCaptured event
func NewThoughtCaptured(itemType, itemID, name, userID, sessionID string, timestamp time.Time) ThoughtCaptured {
	return ThoughtCaptured{
		BaseEvent: BaseEvent{
			AggregateID: itemID,
			EventType:   "thought.captured",
			Timestamp:   timestamp,
			Version:     1,
		},
		ItemType:  itemType,
		ItemID:    itemID,
		Name:      name,
		UserID:    userID,
		SessionID: sessionID,
	}
}

// SessionCompleted is raised when an organizing conversation reaches its
// terminal state, whether or not anything was persisted
type SessionCompleted struct {
	BaseEvent
	SessionID   string `json:"session_id"`
	UserID      string `json:"user_id"`
	ThoughtType string `json:"thought_type"`
	ItemsSaved  int    `json:"items_saved"`
}

// NewSessionCompleted creates a SessionCompleted event
func NewSessionCompleted(sessionID, userID, thoughtType string, itemsSaved int, timestamp time.Time) SessionCompleted {
	return SessionCompleted{
		BaseEvent: BaseEvent{
			AggregateID: sessionID,
			EventType:   "session.completed",
			Timestamp:   timestamp,
			Version:     1,
		},
		SessionID:   sessionID,
		UserID:      userID,
		ThoughtType: thoughtType,
		ItemsSaved:  itemsSaved,
	}
}
