package valueobjects

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "dotspark-backend/pkg/errors"
)

// SessionID uniquely identifies an organizing conversation
type SessionID struct {
	value string
}

// NewSessionID generates a new unique session ID
func NewSessionID() SessionID {
	return SessionID{value: uuid.New().String()}
}

// ParseSessionID creates a SessionID from an existing opaque key
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SessionID{}, pkgerrors.NewValidationError("session id cannot be empty")
	}
	return SessionID{value: s}, nil
}

// String returns the string representation
func (id SessionID) String() string {
	return id.value
}

// IsEmpty reports whether the ID is unset
func (id SessionID) IsEmpty() bool {
	return id.value == ""
}

// Equals checks equality with another SessionID
func (id SessionID) Equals(other SessionID) bool {
	return id.value == other.value
}
