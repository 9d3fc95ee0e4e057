package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/linkfix/internal/services/auth"
)

// Request headers carrying session and edit credentials.
const (
	HeaderSessionID    = "X-Session-Id"
	HeaderSessionToken = "X-Session-Token"
	HeaderAPIKey       = "X-Api-Key"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// RequireFeature checks that the redirect integration is switched on.
// Returns true when enabled, false otherwise (and writes error response).
func RequireFeature(w http.ResponseWriter, authService *auth.Service) bool {
	if !authService.IsRedirectFeatureEnabled() {
		WriteError(w, http.StatusForbidden, "Redirect integration is disabled")
		return false
	}
	return true
}

// RequireSession validates the session headers on the request.
// Returns true when the session token checks out.
func RequireSession(w http.ResponseWriter, r *http.Request, authService *auth.Service) bool {
	sessionID := r.Header.Get(HeaderSessionID)
	token := r.Header.Get(HeaderSessionToken)
	if sessionID == "" || token == "" {
		WriteError(w, http.StatusUnauthorized, "Missing session credentials")
		return false
	}
	if err := authService.CheckToken(r.Context(), sessionID, token); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid session")
		return false
	}
	return true
}

// RequireEditKey validates the edit API key on mutating requests.
func RequireEditKey(w http.ResponseWriter, r *http.Request, authService *auth.Service) bool {
	if !authService.CanEdit(r.Header.Get(HeaderAPIKey)) {
		WriteError(w, http.StatusForbidden, "Edit permission denied")
		return false
	}
	return true
}
