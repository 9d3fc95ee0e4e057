package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/linkfix/internal/models"
)

// Sentinel errors returned by storage implementations.
var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrArticleLocked    = errors.New("article is checked out")
	ErrRedirectNotFound = errors.New("redirect not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoPendingMatches = errors.New("no pending matches for session")
)

// ArticleTx is the view of the article store inside one transaction scope.
// Reads see the transaction's own uncommitted writes; every write commits or
// rolls back together when the enclosing WithTransaction closure returns.
type ArticleTx interface {
	Get(id int) (*models.Article, error)
	Update(article *models.Article) error
}

// ArticleStorage - interface for content record persistence
type ArticleStorage interface {
	SaveArticle(ctx context.Context, article *models.Article) error
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	ListArticleIDs(ctx context.Context) ([]int, error)
	ListArticles(ctx context.Context) ([]*models.Article, error)
	CountArticles(ctx context.Context) (int, error)

	// Checkout marks an article as held by an editing session; Checkin
	// releases it. The fixer refuses to rewrite checked-out articles.
	Checkout(ctx context.Context, id int, owner int) error
	Checkin(ctx context.Context, id int) error

	// WithTransaction runs fn inside one atomic transaction scope. An error
	// returned by fn discards every write made through the ArticleTx.
	WithTransaction(ctx context.Context, fn func(tx ArticleTx) error) error

	DeleteArticle(ctx context.Context, id int) error
	ClearAll(ctx context.Context) error
}

// RedirectStorage - interface for redirect rule persistence. Rules are
// read-only to the scanner and fixer; writes exist for loaders and admin.
type RedirectStorage interface {
	SaveRedirect(ctx context.Context, redirect *models.Redirect) error
	GetRedirect(ctx context.Context, id int) (*models.Redirect, error)
	ListPublished(ctx context.Context) ([]*models.Redirect, error)
	ListAll(ctx context.Context) ([]*models.Redirect, error)
	CountPublished(ctx context.Context) (int, error)
	DeleteRedirect(ctx context.Context, id int) error
	ClearAll(ctx context.Context) error
}

// SessionStorage - interface for review sessions and their pending scan
// selections. A selection is ephemeral: overwritten by each scan, removed
// by cancel.
type SessionStorage interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	SetSelection(ctx context.Context, selection *models.PendingSelection) error
	GetSelection(ctx context.Context, sessionID string) (*models.PendingSelection, error)
	ClearSelection(ctx context.Context, sessionID string) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	ArticleStorage() ArticleStorage
	RedirectStorage() RedirectStorage
	SessionStorage() SessionStorage

	// DB returns the underlying database handle for diagnostics.
	DB() interface{}

	Close() error
}
