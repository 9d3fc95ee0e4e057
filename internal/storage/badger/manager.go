package badger

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	articles  interfaces.ArticleStorage
	redirects interfaces.RedirectStorage
	sessions  interfaces.SessionStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		articles:  NewArticleStorage(db, logger),
		redirects: NewRedirectStorage(db, logger),
		sessions:  NewSessionStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ArticleStorage returns the Article storage interface
func (m *Manager) ArticleStorage() interfaces.ArticleStorage {
	return m.articles
}

// RedirectStorage returns the Redirect storage interface
func (m *Manager) RedirectStorage() interfaces.RedirectStorage {
	return m.redirects
}

// SessionStorage returns the Session storage interface
func (m *Manager) SessionStorage() interfaces.SessionStorage {
	return m.sessions
}

// DB returns the underlying database connection
func (m *Manager) DB() interface{} {
	if m.db != nil {
		return m.db.Store()
	}
	return nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// LoadRedirectsFromFiles loads redirect rules from TOML files
func (m *Manager) LoadRedirectsFromFiles(ctx context.Context, dirPath string) error {
	return LoadRedirectsFromFiles(ctx, m.redirects, dirPath, m.logger)
}

// LoadArticlesFromFiles loads article fixtures from TOML files
func (m *Manager) LoadArticlesFromFiles(ctx context.Context, dirPath string) error {
	return LoadArticlesFromFiles(ctx, m.articles, dirPath, m.logger)
}
