package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/services/auth"
	"github.com/ternarybob/linkfix/internal/services/scanner"
)

// ArticleHandler handles HTTP requests for articles and link reports
type ArticleHandler struct {
	articles    interfaces.ArticleStorage
	scanService *scanner.Service
	authService *auth.Service
	logger      arbor.ILogger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles interfaces.ArticleStorage, scanService *scanner.Service, authService *auth.Service, logger arbor.ILogger) *ArticleHandler {
	return &ArticleHandler{
		articles:    articles,
		scanService: scanService,
		authService: authService,
		logger:      logger,
	}
}

// ListArticlesHandler handles GET /api/articles
func (h *ArticleHandler) ListArticlesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}

	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list articles")
		WriteError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}

	type articleSummary struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		CheckedOut bool   `json:"checked_out"`
	}

	summaries := make([]articleSummary, 0, len(articles))
	for _, a := range articles {
		summaries = append(summaries, articleSummary{
			ID:         a.ID,
			Title:      a.Title,
			CheckedOut: a.IsCheckedOut(),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": summaries,
		"count":    len(summaries),
	})
}

// ArticleRoutesHandler dispatches /api/articles/{id} and
// /api/articles/{id}/links.
func (h *ArticleHandler) ArticleRoutesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !RequireFeature(w, h.authService) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/articles/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	switch {
	case len(parts) == 1:
		h.getArticle(w, r, id)
	case len(parts) == 2 && parts[1] == "links":
		h.getLinkReport(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *ArticleHandler) getArticle(w http.ResponseWriter, r *http.Request, id int) {
	article, err := h.articles.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrArticleNotFound) {
			WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.Error().Err(err).Int("id", id).Msg("Failed to get article")
		WriteError(w, http.StatusInternalServerError, "Failed to get article")
		return
	}

	WriteJSON(w, http.StatusOK, article)
}

// getLinkReport inventories every anchor in the article, flagging which
// hrefs the scanner considers eligible and which match a published redirect.
func (h *ArticleHandler) getLinkReport(w http.ResponseWriter, r *http.Request, id int) {
	links, err := h.scanService.LinkReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrArticleNotFound) {
			WriteError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.Error().Err(err).Int("id", id).Msg("Failed to build link report")
		WriteError(w, http.StatusInternalServerError, "Failed to build link report")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"article_id": id,
		"links":      links,
		"count":      len(links),
	})
}
