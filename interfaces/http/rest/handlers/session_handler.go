package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/pkg/auth"
	"dotspark-backend/pkg/common"
	pkgerrors "dotspark-backend/pkg/errors"
)

const defaultSessionListLimit = 20

// SessionHandler exposes conversation history
type SessionHandler struct {
	sessions ports.SessionStore
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions ports.SessionStore, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// SessionSummary is the list-view projection of a session
type SessionSummary struct {
	ID                  string `json:"id"`
	ThoughtType         string `json:"thoughtType"`
	Status              string `json:"status"`
	OrganizationSummary string `json:"organizationSummary,omitempty"`
	TurnCount           int    `json:"turnCount"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// TurnView is one turn in a session detail response
type TurnView struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SessionDetail is the full projection of a session including its turn log
type SessionDetail struct {
	SessionSummary
	Turns []TurnView `json:"turns"`
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	limit := defaultSessionListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	sessions, err := h.sessions.ListByOwner(r.Context(), user.UserID, limit)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Error(err), zap.String("userID", user.UserID))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to list sessions")
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, toSummary(session))
	}

	common.RespondJSON(w, http.StatusOK, summaries)
}

// GetSession handles GET /api/v1/sessions/{sessionID}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	sessionID, err := valueobjects.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "Invalid session id")
		return
	}

	session, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "Session not found")
			return
		}
		h.logger.Error("Failed to get session", zap.Error(err), zap.String("sessionID", sessionID.String()))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to get session")
		return
	}

	// Another user's session is indistinguishable from a missing one.
	if session.OwnerUserID() != user.UserID {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "Session not found")
		return
	}

	turns := session.Turns()
	views := make([]TurnView, 0, len(turns))
	for _, turn := range turns {
		views = append(views, TurnView{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339),
		})
	}

	common.RespondJSON(w, http.StatusOK, SessionDetail{
		SessionSummary: toSummary(session),
		Turns:          views,
	})
}

func toSummary(session *entities.Session) SessionSummary {
	return SessionSummary{
		ID:                  session.ID().String(),
		ThoughtType:         session.CurrentThoughtType().String(),
		Status:              string(session.Status()),
		OrganizationSummary: session.OrganizationSummary(),
		TurnCount:           session.TurnCount(),
		CreatedAt:           session.CreatedAt().Format(time.RFC3339),
		UpdatedAt:           session.UpdatedAt().Format(time.RFC3339),
	}
}
