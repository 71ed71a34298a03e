package organizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

// fixedReasoner returns the same output for every call
type fixedReasoner struct {
	output string
	err    error
}

func (r *fixedReasoner) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return r.output, r.err
}

func classifyWith(t *testing.T, output string, err error) Classification {
	t.Helper()
	c := NewClassifier(&fixedReasoner{output: output, err: err}, zap.NewNop())
	turns := []entities.ConversationTurn{{Role: entities.RoleUser, Content: "I keep thinking about learning piano"}}
	return c.Classify(context.Background(), turns, nil, nil)
}

func TestClassify_ParsesWellFormedJudgment(t *testing.T) {
	cls := classifyWith(t, `{"type":"wheel","confidence":0.85,"reasoning":"goal with steps","suggestedStructure":{"title":"Learn piano","timeline":"6 months"}}`, nil)

	assert.Equal(t, valueobjects.ThoughtTypeWheel, cls.Type)
	assert.InDelta(t, 0.85, cls.Confidence, 1e-9)
	assert.Equal(t, "Learn piano", cls.SuggestedStructure.Title)
}

func TestClassify_ExtractsJSONWrappedInProse(t *testing.T) {
	cls := classifyWith(t, "Sure! Here is my analysis:\n```json\n{\"type\":\"dot\",\"confidence\":0.6,\"reasoning\":\"single insight\"}\n```", nil)

	assert.Equal(t, valueobjects.ThoughtTypeDot, cls.Type)
	assert.InDelta(t, 0.6, cls.Confidence, 1e-9)
}

func TestClassify_MalformedOutputFallsBack(t *testing.T) {
	cls := classifyWith(t, "I am not sure what you mean.", nil)

	assert.Equal(t, valueobjects.ThoughtTypeExploring, cls.Type)
	assert.InDelta(t, 0.1, cls.Confidence, 1e-9)
	assert.Equal(t, "classification error", cls.Reasoning)
}

func TestClassify_CapabilityErrorFallsBack(t *testing.T) {
	cls := classifyWith(t, "", errors.New("timeout"))

	assert.Equal(t, valueobjects.ThoughtTypeExploring, cls.Type)
	assert.InDelta(t, 0.1, cls.Confidence, 1e-9)
}

func TestClassify_UnknownTypeBecomesExploring(t *testing.T) {
	cls := classifyWith(t, `{"type":"spiral","confidence":0.9}`, nil)

	assert.Equal(t, valueobjects.ThoughtTypeExploring, cls.Type)
}

func TestClassify_ConfidenceClamped(t *testing.T) {
	high := classifyWith(t, `{"type":"dot","confidence":3.5}`, nil)
	assert.Equal(t, 1.0, high.Confidence)

	low := classifyWith(t, `{"type":"dot","confidence":-0.3}`, nil)
	assert.Equal(t, 0.0, low.Confidence)
}
