package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - review sessions
	mux.HandleFunc("/api/session", s.app.SessionHandler.CreateSessionHandler) // POST - open review session
	mux.HandleFunc("/api/cancel", s.app.SessionHandler.CancelHandler)         // POST - discard pending matches
	mux.HandleFunc("/api/matches", s.app.SessionHandler.GetMatchesHandler)    // GET - pending matches for review

	// API routes - scanning and fixing
	mux.HandleFunc("/api/scan", s.app.ScanHandler.ScanHandler) // POST - scan one article or the corpus
	mux.HandleFunc("/api/fix", s.app.FixHandler.FixHandler)    // POST - apply approved replacements

	// API routes - articles and redirects
	mux.HandleFunc("/api/articles", s.app.ArticleHandler.ListArticlesHandler)
	mux.HandleFunc("/api/articles/", s.app.ArticleHandler.ArticleRoutesHandler) // GET /{id} and /{id}/links
	mux.HandleFunc("/api/redirects", s.app.RedirectHandler.ListRedirectsHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.StatusHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.StatusHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.StatusHandler.NotFoundHandler)

	return mux
}
