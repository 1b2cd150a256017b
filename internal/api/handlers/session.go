package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mphinance/ulty-tracker/internal/api/request"
	"github.com/mphinance/ulty-tracker/internal/api/response"
	"github.com/mphinance/ulty-tracker/internal/apperrors"
	"github.com/mphinance/ulty-tracker/internal/service"
)

// SessionHandler handles HTTP requests for share tokens.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler with the provided service dependency.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// ShareResponse carries a share token.
type ShareResponse struct {
	Token string `json:"token"`
}

// RestoreResponse reports how many transactions a restore loaded.
type RestoreResponse struct {
	Restored int `json:"restored"`
}

// Share handles GET requests to encode the current state into a share token.
//
// Endpoint: GET /api/session/share
// Response: 200 OK with ShareResponse
// Error: 500 Internal Server Error if encoding fails
func (h *SessionHandler) Share(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionService.Share(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create share token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ShareResponse{Token: token})
}

// Restore handles POST requests to replace the stored state with the contents
// of a share token.
//
// Endpoint: POST /api/session/restore
// Request Body: RestoreSessionRequest (token)
// Response: 200 OK with RestoreResponse
// Error: 400 Bad Request if the body is invalid or the token fails verification
// Error: 500 Internal Server Error if the swap fails
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RestoreSessionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "token is required")
		return
	}

	restored, err := h.sessionService.Restore(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidShareToken) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidShareToken.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to restore session", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RestoreResponse{Restored: restored})
}
