// -----------------------------------------------------------------------
// Review sessions and pending scan selections
// -----------------------------------------------------------------------

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
)

// Service manages review sessions and the per-session pending selection
// passed between the scan step and the fix step.
type Service struct {
	storage interfaces.SessionStorage
	logger  arbor.ILogger
}

// NewService creates a new session service
func NewService(storage interfaces.SessionStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create starts a new review session with a fresh token.
func (s *Service) Create(ctx context.Context) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		ID:        common.NewSessionID(),
		Token:     common.NewSessionToken(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreateSession(ctx, sess); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create session")
		return nil, err
	}

	s.logger.Debug().Str("session_id", sess.ID).Msg("Session created")
	return sess, nil
}

// Validate checks that the session exists and the presented token matches.
func (s *Service) Validate(ctx context.Context, sessionID, token string) error {
	sess, err := s.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if token == "" || sess.Token != token {
		return fmt.Errorf("invalid token for session %s", sessionID)
	}
	return nil
}

// SetSelection overwrites the session's pending selection with the matches
// of the most recent scan.
func (s *Service) SetSelection(ctx context.Context, sessionID string, matches []models.Match) error {
	now := time.Now()
	selection := &models.PendingSelection{
		SessionID: sessionID,
		Matches:   matches,
		ScannedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SetSelection(ctx, selection); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to store pending selection")
		return err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("matches", len(matches)).
		Msg("Pending selection stored")
	return nil
}

// Selection returns the session's pending matches.
func (s *Service) Selection(ctx context.Context, sessionID string) ([]models.Match, error) {
	selection, err := s.storage.GetSelection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return selection.Matches, nil
}

// GroupedSelection returns the pending matches grouped per article for the
// review screen.
func (s *Service) GroupedSelection(ctx context.Context, sessionID string) ([]models.ArticleMatches, error) {
	matches, err := s.Selection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return models.GroupMatches(matches), nil
}

// Clear abandons the session's pending selection. Clearing a session with
// no selection is a no-op.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.storage.ClearSelection(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear pending selection")
		return err
	}

	s.logger.Debug().Str("session_id", sessionID).Msg("Pending selection cleared")
	return nil
}
