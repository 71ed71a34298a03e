package entities

import (
	"time"

	"github.com/google/uuid"

	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

// Source and capture constants for thoughts produced by the organizer.
const (
	SourceConversation = "conversation"
	CaptureOrganized   = "organized"
)

// Dot is a single captured insight. WheelID is set when the dot belongs to
// a wheel; the wheel must already be committed when the dot is written
// (parent-before-child ordering).
type Dot struct {
	ID          string
	UserID      string
	Summary     string
	Anchor      string
	Pulse       string
	WheelID     string
	ChakraID    string
	SourceType  string
	CaptureMode string
	CreatedAt   time.Time
}

// NewDot creates a dot from normalized content
func NewDot(userID string, content valueobjects.DotContent) (*Dot, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	return &Dot{
		ID:          uuid.New().String(),
		UserID:      userID,
		Summary:     content.Summary(),
		Anchor:      content.Anchor(),
		Pulse:       content.Pulse(),
		SourceType:  SourceConversation,
		CaptureMode: CaptureOrganized,
		CreatedAt:   time.Now(),
	}, nil
}

// Wheel is a named cluster of goal-oriented dots with a timeline. ChakraID
// is set when the wheel belongs to a chakra, which must be committed first.
type Wheel struct {
	ID        string
	UserID    string
	Name      string
	Goals     string
	Timeline  string
	Category  string
	Color     string
	ChakraID  string
	CreatedAt time.Time
}

// NewWheel creates a wheel
func NewWheel(userID, name, goals, timeline string) (*Wheel, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("wheel name cannot be empty")
	}

	return &Wheel{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Goals:     goals,
		Timeline:  timeline,
		Category:  "personal",
		Color:     defaultWheelColor,
		CreatedAt: time.Now(),
	}, nil
}

// Chakra is a named cluster of wheels representing a higher-level purpose
type Chakra struct {
	ID        string
	UserID    string
	Name      string
	Purpose   string
	Category  string
	Color     string
	CreatedAt time.Time
}

// NewChakra creates a chakra
func NewChakra(userID, name, purpose string) (*Chakra, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("chakra name cannot be empty")
	}

	return &Chakra{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Purpose:   purpose,
		Category:  "life",
		Color:     defaultChakraColor,
		CreatedAt: time.Now(),
	}, nil
}

const (
	defaultWheelColor  = "#4F8A8B"
	defaultChakraColor = "#7B2D8E"
)
