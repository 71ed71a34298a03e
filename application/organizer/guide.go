package organizer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

// FallbackPrompt is returned whenever the dialogue capability fails;
// the conversation keeps moving instead of surfacing an error.
const FallbackPrompt = "Tell me more about what's on your mind..."

const guideSystemPrompt = `You are a warm, curious thought-organizing companion.
Write ONE short conversational reply (2-4 sentences) that helps the user
clarify their thinking. Never mention classifications, confidence scores,
dots, wheels or chakras by name. Ask at most one question.`

// branchInstructions steer the reply per classification branch without
// ever exposing the branch itself to the user
var branchInstructions = map[valueobjects.ThoughtType]string{
	valueobjects.ThoughtTypeDot:       "Gently elicit the core insight, why it matters to them personally, and how it feels in one word.",
	valueobjects.ThoughtTypeWheel:     "Gently elicit the central goal, the smaller steps underneath it, and a rough timeline.",
	valueobjects.ThoughtTypeChakra:    "Gently elicit the overarching purpose and the areas of life it spans.",
	valueobjects.ThoughtTypeExploring: "Ask open-ended clarifying questions to understand what they are really circling around.",
}

// DialogueGuide produces the next assistant utterance, steering the user
// toward clarifying the right structure without revealing the raw
// classification.
type DialogueGuide struct {
	reasoner ports.Reasoner
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewDialogueGuide creates a dialogue guide
func NewDialogueGuide(reasoner ports.Reasoner, cfg *config.DomainConfig, logger *zap.Logger) *DialogueGuide {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &DialogueGuide{
		reasoner: reasoner,
		cfg:      cfg,
		logger:   logger,
	}
}

// Guide produces one bounded conversational turn for the classified branch
func (g *DialogueGuide) Guide(
	ctx context.Context,
	cls Classification,
	turns []entities.ConversationTurn,
	patternMemory []*entities.PatternRecord,
) string {
	instruction, ok := branchInstructions[cls.Type]
	if !ok {
		instruction = branchInstructions[valueobjects.ThoughtTypeExploring]
	}

	prompt := fmt.Sprintf(
		"Conversation so far:\n%s\nThe user's usual conversational patterns:\n%s\nGuidance for this reply: %s",
		renderTranscript(turns),
		renderPatternMemory(patternMemory),
		instruction,
	)

	reply, err := g.reasoner.Complete(ctx, guideSystemPrompt, prompt)
	if err != nil {
		g.logger.Warn("Dialogue capability failed, using fallback prompt", zap.Error(err))
		return FallbackPrompt
	}

	reply = trimReply(reply, g.cfg.MaxAssistantLength)
	if reply == "" {
		return FallbackPrompt
	}
	return reply
}

// trimReply bounds the assistant utterance length
func trimReply(s string, max int) string {
	s = strings.Trim(s, " \n\t\"")
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
