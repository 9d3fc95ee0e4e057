package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/scanner"
)

// RedirectHandler handles HTTP requests for redirect rules
type RedirectHandler struct {
	redirects   interfaces.RedirectStorage
	scanService *scanner.Service
	authService *auth.Service
	logger      arbor.ILogger
}

// NewRedirectHandler creates a new RedirectHandler
func NewRedirectHandler(redirects interfaces.RedirectStorage, scanService *scanner.Service, authService *auth.Service, logger arbor.ILogger) *RedirectHandler {
	return &RedirectHandler{
		redirects:   redirects,
		scanService: scanService,
		authService: authService,
		logger:      logger,
	}
}

// ListRedirectsHandler handles GET /api/redirects. Each published rule is
// annotated with whether it survives validation against the site base URL.
func (h *RedirectHandler) ListRedirectsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}

	redirects, err := h.redirects.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list redirects")
		WriteError(w, http.StatusInternalServerError, "Failed to list redirects")
		return
	}

	valid := h.scanService.ValidRules(redirects)
	validSet := make(map[string]bool, len(valid))
	for _, rule := range valid {
		validSet[rule.OldURL] = true
	}

	type redirectView struct {
		ID        int    `json:"id"`
		OldURL    string `json:"old_url"`
		NewURL    string `json:"new_url"`
		Published bool   `json:"published"`
		Comment   string `json:"comment,omitempty"`
		Valid     bool   `json:"valid"`
	}

	views := make([]redirectView, 0, len(redirects))
	for _, red := range redirects {
		views = append(views, redirectView{
			ID:        red.ID,
			OldURL:    red.OldURL,
			NewURL:    red.NewURL,
			Published: red.Published,
			Comment:   red.Comment,
			Valid:     red.Published && validSet[strings.TrimSpace(red.OldURL)],
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"redirects": views,
		"count":     len(views),
	})
}
