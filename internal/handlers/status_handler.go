package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
)

// StatusHandler handles HTTP requests for application status
type StatusHandler struct {
	config    *common.Config
	articles  interfaces.ArticleStorage
	redirects interfaces.RedirectStorage
	logger    arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(config *common.Config, articles interfaces.ArticleStorage, redirects interfaces.RedirectStorage, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		config:    config,
		articles:  articles,
		redirects: redirects,
		logger:    logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stats := h.collectStats(r)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"version":           common.GetVersion(),
		"environment":       h.config.Environment,
		"redirects_enabled": h.config.Redirects.Enabled,
		"site_base_url":     h.config.Site.BaseURL,
		"content":           stats,
	})
}

func (h *StatusHandler) collectStats(r *http.Request) *models.ArticleStats {
	stats := &models.ArticleStats{}

	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to list articles for status")
	}
	stats.TotalArticles = len(articles)
	for _, article := range articles {
		if article.IsCheckedOut() {
			stats.CheckedOut++
		}
		if article.UpdatedAt.After(stats.LastUpdated) {
			stats.LastUpdated = article.UpdatedAt
		}
	}

	published, err := h.redirects.CountPublished(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count redirects for status")
	}
	stats.PublishedRules = published

	return stats
}

// VersionHandler returns version information
func (h *StatusHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetFullVersion(),
	})
}

// HealthHandler returns health check status
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *StatusHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
