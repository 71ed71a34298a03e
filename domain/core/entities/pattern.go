package entities

import (
	"time"

	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

// ConversationStyle captures how a user tends to talk through their thoughts
type ConversationStyle string

const (
	StyleBrief    ConversationStyle = "brief"
	StyleDetailed ConversationStyle = "detailed"
)

// PatternRecord is the per-user memory of one recurring thought pattern:
// which keywords and topics the user reaches for when they produce a given
// structural type. One record exists per (user, thoughtPattern) pair and is
// merged on every encounter, never deleted.
type PatternRecord struct {
	ownerUserID       string
	thoughtPattern    valueobjects.ThoughtType
	keywords          []string
	conversationStyle ConversationStyle
	preferredTopics   []string
	updatedAt         time.Time
}

// NewPatternRecord creates a record on first encounter of a pattern for a user
func NewPatternRecord(
	ownerUserID string,
	pattern valueobjects.ThoughtType,
	keywords []string,
	style ConversationStyle,
) (*PatternRecord, error) {
	if ownerUserID == "" {
		return nil, pkgerrors.NewValidationError("ownerUserID cannot be empty")
	}
	if !pattern.IsValid() {
		return nil, pkgerrors.NewValidationError("invalid thought pattern")
	}
	if style != StyleBrief && style != StyleDetailed {
		style = StyleBrief
	}

	return &PatternRecord{
		ownerUserID:       ownerUserID,
		thoughtPattern:    pattern,
		keywords:          dedupeKeywords(keywords),
		conversationStyle: style,
		preferredTopics:   []string{},
		updatedAt:         time.Now(),
	}, nil
}

// ReconstructPatternRecord rebuilds a record from repository data
func ReconstructPatternRecord(
	ownerUserID string,
	pattern valueobjects.ThoughtType,
	keywords []string,
	style ConversationStyle,
	preferredTopics []string,
	updatedAt time.Time,
) *PatternRecord {
	if keywords == nil {
		keywords = []string{}
	}
	if preferredTopics == nil {
		preferredTopics = []string{}
	}

	return &PatternRecord{
		ownerUserID:       ownerUserID,
		thoughtPattern:    pattern,
		keywords:          keywords,
		conversationStyle: style,
		preferredTopics:   preferredTopics,
		updatedAt:         updatedAt,
	}
}

// OwnerUserID returns the owning user id
func (p *PatternRecord) OwnerUserID() string {
	return p.ownerUserID
}

// ThoughtPattern returns the structural type this record tracks
func (p *PatternRecord) ThoughtPattern() valueobjects.ThoughtType {
	return p.thoughtPattern
}

// Keywords returns a copy of the tracked keywords
func (p *PatternRecord) Keywords() []string {
	out := make([]string, len(p.keywords))
	copy(out, p.keywords)
	return out
}

// ConversationStyle returns the inferred style
func (p *PatternRecord) ConversationStyle() ConversationStyle {
	return p.conversationStyle
}

// PreferredTopics returns a copy of the preferred topics
func (p *PatternRecord) PreferredTopics() []string {
	out := make([]string, len(p.preferredTopics))
	copy(out, p.preferredTopics)
	return out
}

// UpdatedAt returns the last merge timestamp
func (p *PatternRecord) UpdatedAt() time.Time {
	return p.updatedAt
}

// MergeKeywords unions the existing keywords with incoming ones and keeps
// at most max entries with a most-recent bias: when the union overflows,
// the oldest keywords are dropped first.
func (p *PatternRecord) MergeKeywords(incoming []string, max int) {
	merged := p.keywords
	for _, kw := range incoming {
		if kw == "" || containsKeyword(merged, kw) {
			continue
		}
		merged = append(merged, kw)
	}
	if max > 0 && len(merged) > max {
		merged = merged[len(merged)-max:]
	}
	p.keywords = merged
	p.updatedAt = time.Now()
}

// AddPreferredTopic records a topic the user keeps returning to
func (p *PatternRecord) AddPreferredTopic(topic string) {
	if topic == "" || containsKeyword(p.preferredTopics, topic) {
		return
	}
	p.preferredTopics = append(p.preferredTopics, topic)
	p.updatedAt = time.Now()
}

func containsKeyword(list []string, kw string) bool {
	for _, item := range list {
		if item == kw {
			return true
		}
	}
	return false
}

func dedupeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || containsKeyword(out, kw) {
			continue
		}
		out = append(out, kw)
	}
	return out
}
