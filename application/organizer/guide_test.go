package organizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

func guideWith(t *testing.T, output string, err error) string {
	t.Helper()
	g := NewDialogueGuide(&fixedReasoner{output: output, err: err}, config.DefaultDomainConfig(), zap.NewNop())
	cls := Classification{Type: valueobjects.ThoughtTypeDot, Confidence: 0.5}
	turns := []entities.ConversationTurn{{Role: entities.RoleUser, Content: "thinking out loud"}}
	return g.Guide(context.Background(), cls, turns, nil)
}

func TestGuide_ReturnsTrimmedReply(t *testing.T) {
	reply := guideWith(t, "\n  \"What made this click for you today?\"  \n", nil)
	assert.Equal(t, "What made this click for you today?", reply)
}

func TestGuide_CapabilityErrorUsesFallback(t *testing.T) {
	reply := guideWith(t, "", errors.New("down"))
	assert.Equal(t, FallbackPrompt, reply)
}

func TestGuide_EmptyReplyUsesFallback(t *testing.T) {
	reply := guideWith(t, "   \n", nil)
	assert.Equal(t, FallbackPrompt, reply)
}

func TestGuide_BoundsReplyLength(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	reply := guideWith(t, strings.Repeat("a", cfg.MaxAssistantLength*2), nil)
	assert.Equal(t, cfg.MaxAssistantLength, utf8.RuneCountInString(reply))
}

func TestGuide_UnknownBranchFallsBackToExploringInstruction(t *testing.T) {
	g := NewDialogueGuide(&fixedReasoner{output: "ok"}, config.DefaultDomainConfig(), zap.NewNop())
	cls := Classification{Type: valueobjects.ThoughtType("bogus")}
	reply := g.Guide(context.Background(), cls, nil, nil)
	assert.Equal(t, "ok", reply)
}
