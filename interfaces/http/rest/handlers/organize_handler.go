// Package handlers contains the HTTP handlers for the REST API.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"dotspark-backend/application/organizer"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/pkg/auth"
	"dotspark-backend/pkg/common"
	pkgerrors "dotspark-backend/pkg/errors"
	"dotspark-backend/pkg/utils"
)

// OrganizeHandler drives organizing conversations over HTTP. One POST is
// one conversational turn.
type OrganizeHandler struct {
	orchestrator *organizer.Orchestrator
	logger       *zap.Logger
}

// NewOrganizeHandler creates a new OrganizeHandler
func NewOrganizeHandler(orchestrator *organizer.Orchestrator, logger *zap.Logger) *OrganizeHandler {
	return &OrganizeHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// OrganizeRequest is one conversational turn from the client. The client
// generates the session id and carries the step it was last told.
type OrganizeRequest struct {
	Input     string `json:"input" validate:"max=10000"`
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Step      string `json:"step"`
}

// OrganizeResponse is the engine's reply for one turn
type OrganizeResponse struct {
	SessionID        string                       `json:"sessionId"`
	Response         string                       `json:"response"`
	NextStep         string                       `json:"nextStep"`
	OrganizedSummary *organizer.OrganizedProposal `json:"organizedSummary,omitempty"`
	SaveResult       *organizer.SaveResult        `json:"saveResult,omitempty"`
}

// OrganizeThoughts handles POST /api/v1/organize
func (h *OrganizeHandler) OrganizeThoughts(w http.ResponseWriter, r *http.Request) {
	var req OrganizeRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	sessionID, err := valueobjects.ParseSessionID(req.SessionID)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "Invalid session id")
		return
	}

	ownerUserID := auth.UserIDFromContext(r.Context())
	step := valueobjects.ParseConversationStep(req.Step)

	result, err := h.orchestrator.HandleOrganizeThoughts(r.Context(), req.Input, ownerUserID, sessionID, step)
	if err != nil {
		h.logger.Error("Organize turn failed",
			zap.Error(err),
			zap.String("sessionID", sessionID.String()),
		)
		status := http.StatusInternalServerError
		code := common.StandardErrorCodes.InternalError
		if appErr := pkgerrors.AsAppError(err); appErr != nil {
			status = appErr.HTTPStatus
			code = string(appErr.Type)
		}
		common.RespondError(w, status, code, "Failed to process turn")
		return
	}

	common.RespondJSON(w, http.StatusOK, OrganizeResponse{
		SessionID:        sessionID.String(),
		Response:         result.Response,
		NextStep:         result.NextStep.String(),
		OrganizedSummary: result.OrganizedSummary,
		SaveResult:       result.SaveResult,
	})
}
