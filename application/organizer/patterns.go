package organizer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	pkgerrors "dotspark-backend/pkg/errors"
)

// stopwords excluded from naive keyword extraction
var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "have": {}, "what": {},
	"from": {}, "they": {}, "been": {}, "were": {}, "when": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "about": {},
	"there": {}, "their": {}, "which": {}, "because": {}, "really": {},
	"just": {}, "like": {}, "want": {}, "need": {}, "think": {},
	"something": {}, "things": {}, "going": {}, "maybe": {},
}

// PatternLearner maintains the per-user pattern memory. It is a
// quality-of-life signal, not required for correctness: every failure is
// logged and swallowed so the state machine never notices.
type PatternLearner struct {
	patterns ports.PatternStore
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewPatternLearner creates a pattern learner
func NewPatternLearner(patterns ports.PatternStore, cfg *config.DomainConfig, logger *zap.Logger) *PatternLearner {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &PatternLearner{
		patterns: patterns,
		cfg:      cfg,
		logger:   logger,
	}
}

// UpdatePatterns merges keywords from this conversation into the record
// for (owner, classification type). Anonymous conversations learn nothing.
func (l *PatternLearner) UpdatePatterns(
	ctx context.Context,
	ownerUserID string,
	cls Classification,
	turns []entities.ConversationTurn,
) {
	if ownerUserID == "" {
		return
	}

	keywords := l.extractKeywords(turns)
	if len(keywords) == 0 {
		return
	}

	record, err := l.patterns.FindByOwnerAndPattern(ctx, ownerUserID, cls.Type)
	switch {
	case err == nil:
		record.MergeKeywords(keywords, l.cfg.MaxKeywordsPerRecord)

	case pkgerrors.IsNotFound(err):
		style := entities.StyleBrief
		if len(turns) > l.cfg.DetailedStyleTurnCount {
			style = entities.StyleDetailed
		}
		record, err = entities.NewPatternRecord(ownerUserID, cls.Type, keywords, style)
		if err != nil {
			l.logger.Warn("Failed to create pattern record", zap.Error(err))
			return
		}

	default:
		l.logger.Warn("Failed to load pattern record",
			zap.Error(err),
			zap.String("userID", ownerUserID),
		)
		return
	}

	if err := l.patterns.Upsert(ctx, record); err != nil {
		l.logger.Warn("Failed to save pattern record",
			zap.Error(err),
			zap.String("userID", ownerUserID),
		)
	}
}

// extractKeywords naively tokenizes the user turns: lowercase, whitespace
// split, length above the configured minimum, stopwords excluded, capped
// per call. A bounded-cost heuristic, not NLP.
func (l *PatternLearner) extractKeywords(turns []entities.ConversationTurn) []string {
	var out []string
	seen := map[string]struct{}{}

	for _, turn := range turns {
		if turn.Role != entities.RoleUser {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(turn.Content)) {
			word = strings.Trim(word, ".,!?;:\"'()")
			if len(word) < l.cfg.MinKeywordLength {
				continue
			}
			if _, stop := stopwords[word]; stop {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			out = append(out, word)
			if len(out) >= l.cfg.MaxNewKeywordsPerTurn {
				return out
			}
		}
	}

	return out
}
