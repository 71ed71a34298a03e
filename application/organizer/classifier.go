package organizer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

const classifierSystemPrompt = `You are the intent classifier of a personal note-taking assistant.
Decide which structure the user's thoughts are converging on:
- "dot": a single transient insight or realization
- "wheel": goals, action items or timelines that could group several insights
- "chakra": an overarching purpose or life domain spanning multiple goal clusters
- "exploring": intent is still unclear

Respond with a single JSON object:
{"type":"dot|wheel|chakra|exploring","confidence":0.0-1.0,"reasoning":"...",
"suggestedStructure":{"title":"...","timeline":"...","relatedTopics":[],"potentialConnections":[]}}`

// Classifier derives a typed structural judgment from the turn log and the
// caller's pattern memory. It has no side effects beyond the external call,
// and it never returns an error: any failure degrades to an exploring
// classification with low confidence.
type Classifier struct {
	reasoner ports.Reasoner
	logger   *zap.Logger
}

// NewClassifier creates a classifier
func NewClassifier(reasoner ports.Reasoner, logger *zap.Logger) *Classifier {
	return &Classifier{
		reasoner: reasoner,
		logger:   logger,
	}
}

// Classify judges the structural intent of the conversation. Pattern memory
// and recent thought titles are context, not ground truth.
func (c *Classifier) Classify(
	ctx context.Context,
	turns []entities.ConversationTurn,
	patternMemory []*entities.PatternRecord,
	recentTitles []string,
) Classification {
	prompt := c.buildPrompt(turns, patternMemory, recentTitles)

	raw, err := c.reasoner.Complete(ctx, classifierSystemPrompt, prompt)
	if err != nil {
		c.logger.Warn("Classification capability failed, falling back to exploring",
			zap.Error(err),
		)
		return fallbackClassification()
	}

	var cls Classification
	if err := extractJSON(raw, &cls); err != nil {
		c.logger.Warn("Unparseable classification output, falling back to exploring",
			zap.Error(err),
		)
		return fallbackClassification()
	}

	if !cls.Type.IsValid() {
		cls.Type = valueobjects.ThoughtTypeExploring
	}
	if cls.Confidence < 0 {
		cls.Confidence = 0
	}
	if cls.Confidence > 1 {
		cls.Confidence = 1
	}

	return cls
}

// buildPrompt assembles the conversation, pattern memory and recent titles
// into one classification request
func (c *Classifier) buildPrompt(
	turns []entities.ConversationTurn,
	patternMemory []*entities.PatternRecord,
	recentTitles []string,
) string {
	titles := "none"
	if len(recentTitles) > 0 {
		titles = strings.Join(recentTitles, "; ")
	}

	return fmt.Sprintf(
		"Conversation so far:\n%s\nUser's historical thought patterns:\n%s\nRecent saved titles: %s\n\nClassify the user's current structural intent.",
		renderTranscript(turns),
		renderPatternMemory(patternMemory),
		titles,
	)
}

// fallbackClassification is the typed degraded-mode result used whenever
// the external capability is unavailable or returns garbage
func fallbackClassification() Classification {
	return Classification{
		Type:       valueobjects.ThoughtTypeExploring,
		Confidence: 0.1,
		Reasoning:  "classification error",
	}
}
