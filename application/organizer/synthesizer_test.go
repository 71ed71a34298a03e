package organizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

func synthesizeWith(t *testing.T, thoughtType valueobjects.ThoughtType, output string, err error) OrganizedProposal {
	t.Helper()
	s := NewSynthesizer(&fixedReasoner{output: output, err: err}, config.DefaultDomainConfig(), zap.NewNop())
	cls := Classification{Type: thoughtType, Confidence: 0.9}
	turns := []entities.ConversationTurn{
		{Role: entities.RoleUser, Content: "my raw thoughts"},
		{Role: entities.RoleAssistant, Content: "tell me more"},
	}
	return s.Synthesize(context.Background(), cls, turns, nil)
}

func TestSynthesize_DotProposal(t *testing.T) {
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeDot,
		`{"summary":"Walking clears my head","anchor":"the park loop at lunch","pulse":"calm"}`, nil)

	require.Equal(t, SketchDot, proposal.Data.Kind)
	require.NotNil(t, proposal.Data.Dot)
	assert.Equal(t, "Walking clears my head", proposal.Data.Dot.Summary)
	assert.True(t, proposal.UserConfirmationNeeded)
	assert.Contains(t, proposal.VisualSummary, "Walking clears my head")
	assert.Contains(t, proposal.VisualSummary, "calm")
}

func TestSynthesize_OversizedDotFieldsAreTruncated(t *testing.T) {
	longSummary := strings.Repeat("é", 400)
	longAnchor := strings.Repeat("x", 500)
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeDot,
		`{"summary":"`+longSummary+`","anchor":"`+longAnchor+`","pulse":"Excited and nervous"}`, nil)

	require.Equal(t, SketchDot, proposal.Data.Kind)
	cfg := config.DefaultDomainConfig()
	assert.Equal(t, cfg.MaxSummaryLength, utf8.RuneCountInString(proposal.Data.Dot.Summary))
	assert.Equal(t, cfg.MaxAnchorLength, utf8.RuneCountInString(proposal.Data.Dot.Anchor))
	// Pulse collapses to its first word, lowercased.
	assert.Equal(t, "excited", proposal.Data.Dot.Pulse)
}

func TestSynthesize_WheelProposalFiltersInvalidChildDots(t *testing.T) {
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeWheel,
		`{"name":"Learn piano","goals":"play one full song","timeline":"6 months","dots":[{"summary":"practice scales daily","pulse":"determined"},{"summary":"","anchor":"orphan"}]}`, nil)

	require.Equal(t, SketchWheel, proposal.Data.Kind)
	require.NotNil(t, proposal.Data.Wheel)
	assert.Equal(t, "Learn piano", proposal.Data.Wheel.Name)
	// The empty-summary child cannot be normalized and is dropped.
	require.Len(t, proposal.Data.Wheel.Dots, 1)
	assert.Equal(t, "practice scales daily", proposal.Data.Wheel.Dots[0].Summary)
	assert.Contains(t, proposal.VisualSummary, "Learn piano")
}

func TestSynthesize_ChakraProposal(t *testing.T) {
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeChakra,
		`{"name":"Creative life","purpose":"make things weekly","wheels":[{"name":"Music","goals":"compose","timeline":"this year"},{"name":"Writing","goals":"essays","timeline":"ongoing"}]}`, nil)

	require.Equal(t, SketchChakra, proposal.Data.Kind)
	require.NotNil(t, proposal.Data.Chakra)
	assert.Len(t, proposal.Data.Chakra.Wheels, 2)
	assert.Contains(t, proposal.VisualSummary, "Creative life")
}

func TestSynthesize_WheelMissingNameDegrades(t *testing.T) {
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeWheel, `{"goals":"something"}`, nil)

	assert.Equal(t, SketchNone, proposal.Data.Kind)
	assert.Equal(t, DegradedVisualSummary, proposal.VisualSummary)
	assert.True(t, proposal.UserConfirmationNeeded)
}

func TestSynthesize_CapabilityErrorDegrades(t *testing.T) {
	proposal := synthesizeWith(t, valueobjects.ThoughtTypeDot, "", errors.New("down"))

	assert.Equal(t, SketchNone, proposal.Data.Kind)
	assert.True(t, proposal.Data.IsEmpty())
	assert.Equal(t, DegradedVisualSummary, proposal.VisualSummary)
	assert.True(t, proposal.UserConfirmationNeeded)
}

func TestStructuredData_NormalizeEnforcesSingleVariant(t *testing.T) {
	data := StructuredData{
		Kind:  SketchDot,
		Dot:   &DotSketch{Summary: "a"},
		Wheel: &WheelSketch{Name: "stray"},
	}
	data.normalize()

	assert.NotNil(t, data.Dot)
	assert.Nil(t, data.Wheel)
	assert.Nil(t, data.Chakra)

	mismatched := StructuredData{Kind: SketchWheel, Dot: &DotSketch{Summary: "a"}}
	mismatched.normalize()
	assert.Equal(t, SketchNone, mismatched.Kind)
	assert.True(t, mismatched.IsEmpty())
}
