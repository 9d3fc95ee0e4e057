package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/fixer"
)

// FixHandler handles HTTP requests that apply approved link replacements
type FixHandler struct {
	fixService  *fixer.Service
	authService *auth.Service
	validate    *validator.Validate
	logger      arbor.ILogger
}

// NewFixHandler creates a new FixHandler
func NewFixHandler(fixService *fixer.Service, authService *auth.Service, logger arbor.ILogger) *FixHandler {
	return &FixHandler{
		fixService:  fixService,
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// FixHandler handles POST /api/fix. In bulk mode every submitted article is
// rewritten inside one transaction; in single mode only the named article is.
func (h *FixHandler) FixHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}
	if !RequireSession(w, r, h.authService) {
		return
	}
	if !RequireEditKey(w, r, h.authService) {
		return
	}

	var req models.FixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Fix request failed validation")
		WriteError(w, http.StatusBadRequest, "Invalid fix request: "+err.Error())
		return
	}

	if !req.UpdateAll && req.UpdateSingleID <= 0 {
		WriteError(w, http.StatusBadRequest, "Either update_all or update_single_id must be set")
		return
	}

	sessionID := r.Header.Get(HeaderSessionID)
	report := &models.Report{}

	var updated int
	if req.UpdateAll {
		updated = h.fixService.UpdateAll(r.Context(), sessionID, &req, report)
	} else {
		updated = h.fixService.UpdateSingle(r.Context(), sessionID, &req, req.UpdateSingleID, report)
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Int("updated", updated).
		Bool("update_all", req.UpdateAll).
		Msg("Fix completed")

	status := http.StatusOK
	if report.HasErrors() && updated == 0 {
		status = http.StatusConflict
	}

	WriteJSON(w, status, map[string]interface{}{
		"updated":  updated,
		"messages": report.Messages,
	})
}
