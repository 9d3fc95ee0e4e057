package badger

import (
	"context"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ArticleStorage implements the ArticleStorage interface for Badger
type ArticleStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewArticleStorage creates a new ArticleStorage instance
func NewArticleStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ArticleStorage {
	return &ArticleStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ArticleStorage) SaveArticle(ctx context.Context, article *models.Article) error {
	if article.ID <= 0 {
		return fmt.Errorf("article ID is required")
	}

	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	if err := s.db.Store().Upsert(article.ID, article); err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

func (s *ArticleStorage) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	var article models.Article
	if err := s.db.Store().Get(id, &article); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (s *ArticleStorage) ListArticleIDs(ctx context.Context) ([]int, error) {
	var articles []models.Article
	if err := s.db.Store().Find(&articles, badgerhold.Where("ID").Gt(0).SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list article IDs: %w", err)
	}

	ids := make([]int, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
	}
	return ids, nil
}

func (s *ArticleStorage) ListArticles(ctx context.Context) ([]*models.Article, error) {
	var articles []models.Article
	if err := s.db.Store().Find(&articles, badgerhold.Where("ID").Gt(0).SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	result := make([]*models.Article, len(articles))
	for i := range articles {
		result[i] = &articles[i]
	}
	return result, nil
}

func (s *ArticleStorage) CountArticles(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Article{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return int(count), nil
}

// Checkout marks the article as held by an editing session. Articles held
// by a different owner cannot be checked out again.
func (s *ArticleStorage) Checkout(ctx context.Context, id int, owner int) error {
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return err
	}

	if article.CheckedOut > 0 && article.CheckedOut != owner {
		return interfaces.ErrArticleLocked
	}

	now := time.Now()
	article.CheckedOut = owner
	article.CheckedOutTime = &now

	if err := s.db.Store().Upsert(article.ID, article); err != nil {
		return fmt.Errorf("failed to check out article: %w", err)
	}
	return nil
}

// Checkin releases the article's editing lock.
func (s *ArticleStorage) Checkin(ctx context.Context, id int) error {
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return err
	}

	article.CheckedOut = 0
	article.CheckedOutTime = nil

	if err := s.db.Store().Upsert(article.ID, article); err != nil {
		return fmt.Errorf("failed to check in article: %w", err)
	}
	return nil
}

// articleTx is the transaction-scoped view of the article store. All reads
// and writes go through one badger transaction; the enclosing Update call
// commits on nil and discards everything on error.
type articleTx struct {
	store *badgerhold.Store
	txn   *badgerdb.Txn
}

func (t *articleTx) Get(id int) (*models.Article, error) {
	var article models.Article
	if err := t.store.TxGet(t.txn, id, &article); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (t *articleTx) Update(article *models.Article) error {
	if article.ID <= 0 {
		return fmt.Errorf("article ID is required")
	}
	article.UpdatedAt = time.Now()
	if err := t.store.TxUpsert(t.txn, article.ID, article); err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside one badger read-write transaction.
func (s *ArticleStorage) WithTransaction(ctx context.Context, fn func(tx interfaces.ArticleTx) error) error {
	return s.db.Store().Badger().Update(func(txn *badgerdb.Txn) error {
		return fn(&articleTx{store: s.db.Store(), txn: txn})
	})
}

func (s *ArticleStorage) DeleteArticle(ctx context.Context, id int) error {
	if err := s.db.Store().Delete(id, &models.Article{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (s *ArticleStorage) ClearAll(ctx context.Context) error {
	return s.db.Store().DeleteMatching(&models.Article{}, nil)
}
