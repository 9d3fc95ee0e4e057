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

// RedirectStorage implements the RedirectStorage interface for Badger
type RedirectStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRedirectStorage creates a new RedirectStorage instance
func NewRedirectStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RedirectStorage {
	return &RedirectStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RedirectStorage) SaveRedirect(ctx context.Context, redirect *models.Redirect) error {
	if redirect.ID <= 0 {
		next, err := s.nextID()
		if err != nil {
			return err
		}
		redirect.ID = next
	}

	now := time.Now()
	if redirect.CreatedAt.IsZero() {
		redirect.CreatedAt = now
	}
	redirect.UpdatedAt = now

	if err := s.db.Store().Upsert(redirect.ID, redirect); err != nil {
		return fmt.Errorf("failed to save redirect: %w", err)
	}
	return nil
}

func (s *RedirectStorage) nextID() (int, error) {
	var redirects []models.Redirect
	if err := s.db.Store().Find(&redirects, badgerhold.Where("ID").Gt(0)); err != nil {
		return 0, fmt.Errorf("failed to allocate redirect ID: %w", err)
	}

	max := 0
	for i := range redirects {
		if redirects[i].ID > max {
			max = redirects[i].ID
		}
	}
	return max + 1, nil
}

func (s *RedirectStorage) GetRedirect(ctx context.Context, id int) (*models.Redirect, error) {
	var redirect models.Redirect
	if err := s.db.Store().Get(id, &redirect); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrRedirectNotFound
		}
		return nil, fmt.Errorf("failed to get redirect: %w", err)
	}
	return &redirect, nil
}

func (s *RedirectStorage) ListPublished(ctx context.Context) ([]*models.Redirect, error) {
	var redirects []models.Redirect
	if err := s.db.Store().Find(&redirects, badgerhold.Where("Published").Eq(true).SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list published redirects: %w", err)
	}

	result := make([]*models.Redirect, len(redirects))
	for i := range redirects {
		result[i] = &redirects[i]
	}
	return result, nil
}

func (s *RedirectStorage) ListAll(ctx context.Context) ([]*models.Redirect, error) {
	var redirects []models.Redirect
	if err := s.db.Store().Find(&redirects, badgerhold.Where("ID").Gt(0).SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list redirects: %w", err)
	}

	result := make([]*models.Redirect, len(redirects))
	for i := range redirects {
		result[i] = &redirects[i]
	}
	return result, nil
}

func (s *RedirectStorage) CountPublished(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Redirect{}, badgerhold.Where("Published").Eq(true))
	if err != nil {
		return 0, fmt.Errorf("failed to count redirects: %w", err)
	}
	return int(count), nil
}

func (s *RedirectStorage) DeleteRedirect(ctx context.Context, id int) error {
	if err := s.db.Store().Delete(id, &models.Redirect{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete redirect: %w", err)
	}
	return nil
}

func (s *RedirectStorage) ClearAll(ctx context.Context) error {
	return s.db.Store().DeleteMatching(&models.Redirect{}, nil)
}
