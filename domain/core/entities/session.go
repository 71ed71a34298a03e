package entities

import (
	"time"

	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

// TurnRole identifies the author of a conversation turn
type TurnRole string

const (
	RoleSystem    TurnRole = "system"
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn is a single utterance in an organizing conversation.
// Turns are immutable once appended; insertion order is conversational order.
type ConversationTurn struct {
	Role      TurnRole
	Content   string
	Timestamp time.Time
}

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is the durable record of one multi-turn organizing conversation.
// This is a rich domain model with encapsulated business logic: all mutation
// goes through methods so the append-only turn log and the terminal
// completed state hold by construction.
type Session struct {
	id                  valueobjects.SessionID
	ownerUserID         string // empty for anonymous sessions
	currentThoughtType  valueobjects.ThoughtType
	turns               []ConversationTurn
	organizationSummary string
	status              SessionStatus
	createdAt           time.Time
	updatedAt           time.Time
}

// NewSession creates a new active session. An empty ownerUserID is allowed:
// anonymous users can organize thoughts but never persist them.
func NewSession(id valueobjects.SessionID, ownerUserID string) (*Session, error) {
	if id.IsEmpty() {
		return nil, pkgerrors.NewValidationError("session id cannot be empty")
	}

	now := time.Now()
	return &Session{
		id:                 id,
		ownerUserID:        ownerUserID,
		currentThoughtType: valueobjects.ThoughtTypeExploring,
		turns:              []ConversationTurn{},
		status:             SessionActive,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructSession rebuilds a session from repository data with preserved timestamps
func ReconstructSession(
	id valueobjects.SessionID,
	ownerUserID string,
	thoughtType valueobjects.ThoughtType,
	turns []ConversationTurn,
	organizationSummary string,
	status SessionStatus,
	createdAt, updatedAt time.Time,
) (*Session, error) {
	if id.IsEmpty() {
		return nil, pkgerrors.NewValidationError("session id cannot be empty")
	}
	if !thoughtType.IsValid() {
		thoughtType = valueobjects.ThoughtTypeExploring
	}
	if turns == nil {
		turns = []ConversationTurn{}
	}

	return &Session{
		id:                  id,
		ownerUserID:         ownerUserID,
		currentThoughtType:  thoughtType,
		turns:               turns,
		organizationSummary: organizationSummary,
		status:              status,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

// ID returns the session's unique identifier
func (s *Session) ID() valueobjects.SessionID {
	return s.id
}

// OwnerUserID returns the owning user id, empty for anonymous sessions
func (s *Session) OwnerUserID() string {
	return s.ownerUserID
}

// HasOwner reports whether the session belongs to an authenticated user
func (s *Session) HasOwner() bool {
	return s.ownerUserID != ""
}

// AdoptOwner attaches an owner to a session that started anonymously.
// An existing owner is never overwritten.
func (s *Session) AdoptOwner(ownerUserID string) {
	if s.ownerUserID == "" && ownerUserID != "" {
		s.ownerUserID = ownerUserID
		s.updatedAt = time.Now()
	}
}

// CurrentThoughtType returns the engine's current structural guess
func (s *Session) CurrentThoughtType() valueobjects.ThoughtType {
	return s.currentThoughtType
}

// OrganizationSummary returns the stored proposal summary, if any
func (s *Session) OrganizationSummary() string {
	return s.organizationSummary
}

// Status returns the lifecycle status
func (s *Session) Status() SessionStatus {
	return s.status
}

// CreatedAt returns the creation timestamp
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last mutation timestamp
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsCompleted reports whether the session has reached its terminal state
func (s *Session) IsCompleted() bool {
	return s.status == SessionCompleted
}

// Turns returns a copy of the turn log in conversational order
func (s *Session) Turns() []ConversationTurn {
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount returns the total number of turns
func (s *Session) TurnCount() int {
	return len(s.turns)
}

// UserTurns returns only the user-authored turns. Assistant turns are
// dialogue scaffolding, not source material for synthesis.
func (s *Session) UserTurns() []ConversationTurn {
	var out []ConversationTurn
	for _, turn := range s.turns {
		if turn.Role == RoleUser {
			out = append(out, turn)
		}
	}
	return out
}

// AppendUserTurn appends a user utterance to the log
func (s *Session) AppendUserTurn(content string) error {
	return s.appendTurn(RoleUser, content)
}

// AppendAssistantTurn appends an assistant utterance to the log
func (s *Session) AppendAssistantTurn(content string) error {
	return s.appendTurn(RoleAssistant, content)
}

func (s *Session) appendTurn(role TurnRole, content string) error {
	if s.IsCompleted() {
		return pkgerrors.NewConflictError("session is completed")
	}

	now := time.Now()
	s.turns = append(s.turns, ConversationTurn{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.updatedAt = now
	return nil
}

// SetThoughtType records the engine's latest structural guess
func (s *Session) SetThoughtType(t valueobjects.ThoughtType) {
	if !t.IsValid() {
		t = valueobjects.ThoughtTypeExploring
	}
	s.currentThoughtType = t
	s.updatedAt = time.Now()
}

// SetOrganizationSummary stores the proposal's visual summary on the session
func (s *Session) SetOrganizationSummary(summary string) {
	s.organizationSummary = summary
	s.updatedAt = time.Now()
}

// Complete marks the session completed. Completion is terminal but the
// record persists for history.
func (s *Session) Complete() {
	s.status = SessionCompleted
	s.updatedAt = time.Now()
}
