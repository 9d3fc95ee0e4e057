package auth

import (
	"context"
	"crypto/subtle"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/services/session"
)

// Service gates the scan and fix operations: feature flag, edit
// authorization and the per-session request token.
type Service struct {
	config   *common.Config
	sessions *session.Service
	logger   arbor.ILogger
}

// NewService creates a new auth service
func NewService(config *common.Config, sessions *session.Service, logger arbor.ILogger) *Service {
	return &Service{
		config:   config,
		sessions: sessions,
		logger:   logger,
	}
}

// IsRedirectFeatureEnabled reports whether the redirect-repair feature is
// switched on in configuration.
func (s *Service) IsRedirectFeatureEnabled() bool {
	return s.config.Redirects.Enabled
}

// CanEdit checks the presented edit key. An empty configured key disables
// the check (development setups).
func (s *Service) CanEdit(apiKey string) bool {
	if s.config.Auth.EditKey == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.config.Auth.EditKey)) == 1
}

// CheckToken validates the session's double-submit token.
func (s *Service) CheckToken(ctx context.Context, sessionID, token string) error {
	return s.sessions.Validate(ctx, sessionID, token)
}
