package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

func TestExtractJSON_FirstBalancedObject(t *testing.T) {
	var out map[string]any
	raw := `Here you go: {"a":{"b":1},"c":"two"} and {"ignored":true}`
	require.NoError(t, extractJSON(raw, &out))
	assert.Equal(t, "two", out["c"])
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	var out map[string]any
	raw := `{"text":"a { brace } and an escaped \" quote","n":2}`
	require.NoError(t, extractJSON(raw, &out))
	assert.Equal(t, `a { brace } and an escaped " quote`, out["text"])
}

func TestExtractJSON_NoObject(t *testing.T) {
	var out map[string]any
	assert.Error(t, extractJSON("no json here", &out))
}

func TestExtractJSON_UnterminatedObject(t *testing.T) {
	var out map[string]any
	assert.Error(t, extractJSON(`{"open": true`, &out))
}

func TestRenderUserTurns_OmitsAssistantScaffolding(t *testing.T) {
	turns := []entities.ConversationTurn{
		{Role: entities.RoleUser, Content: "first thought"},
		{Role: entities.RoleAssistant, Content: "a probing question"},
		{Role: entities.RoleUser, Content: "second thought"},
	}

	rendered := renderUserTurns(turns)
	assert.Contains(t, rendered, "first thought")
	assert.Contains(t, rendered, "second thought")
	assert.NotContains(t, rendered, "probing question")
}

func TestRenderPatternMemory(t *testing.T) {
	assert.Equal(t, "none", renderPatternMemory(nil))

	record, err := entities.NewPatternRecord("42", valueobjects.ThoughtTypeWheel, []string{"marathon"}, entities.StyleBrief)
	require.NoError(t, err)
	rendered := renderPatternMemory([]*entities.PatternRecord{record})
	assert.Contains(t, rendered, "wheel")
	assert.Contains(t, rendered, "marathon")
}
