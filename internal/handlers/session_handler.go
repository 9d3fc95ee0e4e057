package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/session"
)

// SessionHandler handles HTTP requests for review sessions
type SessionHandler struct {
	sessionService *session.Service
	authService    *auth.Service
	logger         arbor.ILogger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *session.Service, authService *auth.Service, logger arbor.ILogger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		authService:    authService,
		logger:         logger,
	}
}

// CreateSessionHandler handles POST /api/session
func (h *SessionHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}

	sess, err := h.sessionService.Create(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create session")
		WriteError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"session_id": sess.ID,
		"token":      sess.Token,
	})
}

// CancelHandler handles POST /api/cancel. It discards the session's pending
// matches without touching any article.
func (h *SessionHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}
	if !RequireSession(w, r, h.authService) {
		return
	}

	sessionID := r.Header.Get(HeaderSessionID)
	if err := h.sessionService.Clear(r.Context(), sessionID); err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to clear selection")
		WriteError(w, http.StatusInternalServerError, "Failed to cancel")
		return
	}

	WriteSuccess(w, "Pending matches discarded")
}

// GetMatchesHandler handles GET /api/matches. It returns the session's
// pending matches grouped per article for the review screen.
func (h *SessionHandler) GetMatchesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}
	if !RequireSession(w, r, h.authService) {
		return
	}

	sessionID := r.Header.Get(HeaderSessionID)
	grouped, err := h.sessionService.GroupedSelection(r.Context(), sessionID)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"articles": []interface{}{},
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": grouped,
	})
}
