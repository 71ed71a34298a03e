package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/pkg/auth"
	"dotspark-backend/pkg/common"
)

const defaultPatternListLimit = 10

// PatternHandler exposes the user's learned thought patterns
type PatternHandler struct {
	patterns ports.PatternStore
	logger   *zap.Logger
}

// NewPatternHandler creates a new PatternHandler
func NewPatternHandler(patterns ports.PatternStore, logger *zap.Logger) *PatternHandler {
	return &PatternHandler{
		patterns: patterns,
		logger:   logger,
	}
}

// PatternView is the API projection of a pattern record
type PatternView struct {
	ThoughtPattern    string   `json:"thoughtPattern"`
	Keywords          []string `json:"keywords"`
	ConversationStyle string   `json:"conversationStyle"`
	PreferredTopics   []string `json:"preferredTopics"`
	UpdatedAt         string   `json:"updatedAt"`
}

// ListPatterns handles GET /api/v1/patterns
func (h *PatternHandler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	records, err := h.patterns.ListRecent(r.Context(), user.UserID, defaultPatternListLimit)
	if err != nil {
		h.logger.Error("Failed to list patterns", zap.Error(err), zap.String("userID", user.UserID))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to list patterns")
		return
	}

	views := make([]PatternView, 0, len(records))
	for _, record := range records {
		views = append(views, PatternView{
			ThoughtPattern:    record.ThoughtPattern().String(),
			Keywords:          record.Keywords(),
			ConversationStyle: string(record.ConversationStyle()),
			PreferredTopics:   record.PreferredTopics(),
			UpdatedAt:         record.UpdatedAt().Format(time.RFC3339),
		})
	}

	common.RespondJSON(w, http.StatusOK, views)
}
