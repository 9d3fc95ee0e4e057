package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SessionStorage implements the SessionStorage interface for Badger
type SessionStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSessionStorage creates a new SessionStorage instance
func NewSessionStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SessionStorage {
	return &SessionStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SessionStorage) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	if err := s.db.Store().Upsert(session.ID, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Store().Get(id, &session); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (s *SessionStorage) DeleteSession(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.Session{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	// drop any selection still attached to the session
	return s.ClearSelection(ctx, id)
}

func (s *SessionStorage) SetSelection(ctx context.Context, selection *models.PendingSelection) error {
	if selection.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	now := time.Now()
	if selection.ScannedAt.IsZero() {
		selection.ScannedAt = now
	}
	selection.UpdatedAt = now

	if err := s.db.Store().Upsert(selection.SessionID, selection); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetSelection(ctx context.Context, sessionID string) (*models.PendingSelection, error) {
	var selection models.PendingSelection
	if err := s.db.Store().Get(sessionID, &selection); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNoPendingMatches
		}
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}
	return &selection, nil
}

func (s *SessionStorage) ClearSelection(ctx context.Context, sessionID string) error {
	if err := s.db.Store().Delete(sessionID, &models.PendingSelection{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
