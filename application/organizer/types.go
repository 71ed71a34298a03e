// Package organizer implements the thought organization engine: a
// multi-turn conversational pipeline that classifies the structural intent
// of free-form text, guides the dialogue, synthesizes a structured proposal
// and commits it as linked records on confirmation.
package organizer

import (
	"dotspark-backend/domain/core/valueobjects"
)

// Classification is the classifier's judgment of a conversation. It is
// ephemeral: re-derived from the turn log on every stage, never persisted
// as its own entity.
type Classification struct {
	Type               valueobjects.ThoughtType `json:"type"`
	Confidence         float64                  `json:"confidence"`
	Reasoning          string                   `json:"reasoning"`
	SuggestedStructure SuggestedStructure       `json:"suggestedStructure"`
}

// SuggestedStructure is the classifier's tentative structural sketch
type SuggestedStructure struct {
	Title                string   `json:"title,omitempty"`
	Timeline             string   `json:"timeline,omitempty"`
	RelatedTopics        []string `json:"relatedTopics,omitempty"`
	PotentialConnections []string `json:"potentialConnections,omitempty"`
}

// SketchKind discriminates the structured data union
type SketchKind string

const (
	SketchNone   SketchKind = ""
	SketchDot    SketchKind = "dot"
	SketchWheel  SketchKind = "wheel"
	SketchChakra SketchKind = "chakra"
)

// DotSketch is a proposed insight, already normalized to the dot bounds
type DotSketch struct {
	Summary string `json:"summary"`
	Anchor  string `json:"anchor"`
	Pulse   string `json:"pulse"`
}

// WheelSketch is a proposed goal cluster with its child dots
type WheelSketch struct {
	Name     string      `json:"name"`
	Goals    string      `json:"goals"`
	Timeline string      `json:"timeline"`
	Dots     []DotSketch `json:"dots"`
}

// ChakraWheelSketch is a wheel outline inside a chakra proposal
type ChakraWheelSketch struct {
	Name     string `json:"name"`
	Goals    string `json:"goals"`
	Timeline string `json:"timeline"`
}

// ChakraSketch is a proposed purpose-level cluster with its child wheels
type ChakraSketch struct {
	Name    string              `json:"name"`
	Purpose string              `json:"purpose"`
	Wheels  []ChakraWheelSketch `json:"wheels"`
}

// StructuredData is a tagged union: exactly one variant matching Kind is
// populated. Kind SketchNone means degraded mode, nothing to commit.
type StructuredData struct {
	Kind   SketchKind    `json:"kind"`
	Dot    *DotSketch    `json:"dot,omitempty"`
	Wheel  *WheelSketch  `json:"wheel,omitempty"`
	Chakra *ChakraSketch `json:"chakra,omitempty"`
}

// IsEmpty reports whether there is nothing to commit
func (d StructuredData) IsEmpty() bool {
	switch d.Kind {
	case SketchDot:
		return d.Dot == nil
	case SketchWheel:
		return d.Wheel == nil
	case SketchChakra:
		return d.Chakra == nil
	}
	return true
}

// normalize enforces the exactly-one-variant invariant, clearing any
// variants that do not match the discriminant
func (d *StructuredData) normalize() {
	if d.Kind != SketchDot {
		d.Dot = nil
	}
	if d.Kind != SketchWheel {
		d.Wheel = nil
	}
	if d.Kind != SketchChakra {
		d.Chakra = nil
	}
	if d.IsEmpty() {
		d.Kind = SketchNone
	}
}

// OrganizedProposal is the synthesizer's structured, not-yet-committed
// representation of the user's organized thoughts
type OrganizedProposal struct {
	Classification         Classification `json:"classification"`
	Data                   StructuredData `json:"structuredData"`
	VisualSummary          string         `json:"visualSummary"`
	UserConfirmationNeeded bool           `json:"userConfirmationNeeded"`
}

// SavedItem describes one record written during commit
type SavedItem struct {
	Type string `json:"type"` // dot, wheel or chakra
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SaveResult reports the outcome of a commit. Inserts are best-effort:
// SavedItems lists everything written before a mid-list failure.
type SaveResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	SavedItems []SavedItem `json:"savedItems"`
}

// OrganizeResult is the structured outcome of one orchestrator turn.
// Failure is always data here, never a crash path.
type OrganizeResult struct {
	Response         string                        `json:"response"`
	NextStep         valueobjects.ConversationStep `json:"nextStep"`
	OrganizedSummary *OrganizedProposal            `json:"organizedSummary,omitempty"`
	SaveResult       *SaveResult                   `json:"saveResult,omitempty"`
}
