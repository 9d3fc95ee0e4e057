package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/scanner"
	"github.com/ternarybob/linkfix/internal/services/session"
)

// ScanHandler handles HTTP requests for link scans
type ScanHandler struct {
	scanService    *scanner.Service
	sessionService *session.Service
	authService    *auth.Service
	logger         arbor.ILogger
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *scanner.Service, sessionService *session.Service, authService *auth.Service, logger arbor.ILogger) *ScanHandler {
	return &ScanHandler{
		scanService:    scanService,
		sessionService: sessionService,
		authService:    authService,
		logger:         logger,
	}
}

// ScanRequest selects the scan scope. ArticleID zero means scan the whole
// corpus.
type ScanRequest struct {
	ArticleID int `json:"article_id"`
}

// ScanHandler handles POST /api/scan. The resulting matches become the
// session's pending selection, replacing whatever the previous scan stored.
func (h *ScanHandler) ScanHandler(w http.ResponseWriter, r *http.Request) {
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

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report := &models.Report{}
	var matches []models.Match
	if req.ArticleID > 0 {
		matches = h.scanService.ScanArticle(r.Context(), req.ArticleID, report)
	} else {
		matches = h.scanService.ScanAll(r.Context(), report)
	}

	sessionID := r.Header.Get(HeaderSessionID)
	if err := h.sessionService.SetSelection(r.Context(), sessionID, matches); err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to store scan selection")
		WriteError(w, http.StatusInternalServerError, "Failed to store scan results")
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Int("matches", len(matches)).
		Msg("Scan completed")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"matches":  models.GroupMatches(matches),
		"count":    len(matches),
		"messages": report.Messages,
	})
}
