package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/services/auth"
)

func newAuthService(redirectsEnabled bool) *auth.Service {
	config := common.NewDefaultConfig()
	config.Redirects.Enabled = redirectsEnabled
	return auth.NewService(config, nil, arbor.NewLogger())
}

func TestFixHandlerRejectsWrongMethod(t *testing.T) {
	h := NewFixHandler(nil, newAuthService(true), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/fix", nil)
	rec := httptest.NewRecorder()
	h.FixHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestFixHandlerRejectsDisabledFeature(t *testing.T) {
	h := NewFixHandler(nil, newAuthService(false), arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/fix", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.FixHandler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}

func TestFixHandlerRequiresSessionHeaders(t *testing.T) {
	h := NewFixHandler(nil, newAuthService(true), arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/fix", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.FixHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestScanHandlerRejectsDisabledFeature(t *testing.T) {
	h := NewScanHandler(nil, nil, newAuthService(false), arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/scan", nil)
	rec := httptest.NewRecorder()
	h.ScanHandler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}

func TestSessionHandlerRejectsDisabledFeature(t *testing.T) {
	h := NewSessionHandler(nil, newAuthService(false), arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/session", nil)
	rec := httptest.NewRecorder()
	h.CreateSessionHandler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}
