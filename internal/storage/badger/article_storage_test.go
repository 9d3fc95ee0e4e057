package badger

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	tmpDir, err := os.MkdirTemp("", "badger-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestArticleSaveAndGet(t *testing.T) {
	db := newTestDB(t)
	storage := NewArticleStorage(db, arbor.NewLogger())
	ctx := context.Background()

	article := &models.Article{
		ID:        1,
		Title:     "About us",
		IntroText: "<p>intro</p>",
		FullText:  "<p>full</p>",
	}
	if err := storage.SaveArticle(ctx, article); err != nil {
		t.Fatalf("Failed to save article: %v", err)
	}

	got, err := storage.GetArticle(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get article: %v", err)
	}
	if got.Title != "About us" {
		t.Errorf("Expected title 'About us', got %q", got.Title)
	}

	if _, err := storage.GetArticle(ctx, 99); !errors.Is(err, interfaces.ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleListOrderedByID(t *testing.T) {
	db := newTestDB(t)
	storage := NewArticleStorage(db, arbor.NewLogger())
	ctx := context.Background()

	for _, id := range []int{3, 1, 2} {
		if err := storage.SaveArticle(ctx, &models.Article{ID: id, Title: "a"}); err != nil {
			t.Fatalf("Failed to save article %d: %v", id, err)
		}
	}

	ids, err := storage.ListArticleIDs(ctx)
	if err != nil {
		t.Fatalf("Failed to list article IDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", ids)
	}

	count, err := storage.CountArticles(ctx)
	if err != nil {
		t.Fatalf("Failed to count articles: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 articles, got %d", count)
	}
}

func TestArticleCheckoutConflict(t *testing.T) {
	db := newTestDB(t)
	storage := NewArticleStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.SaveArticle(ctx, &models.Article{ID: 1, Title: "a"}); err != nil {
		t.Fatal(err)
	}

	if err := storage.Checkout(ctx, 1, 10); err != nil {
		t.Fatalf("First checkout failed: %v", err)
	}

	// Same owner may re-acquire, a different owner may not.
	if err := storage.Checkout(ctx, 1, 10); err != nil {
		t.Errorf("Re-checkout by same owner failed: %v", err)
	}
	if err := storage.Checkout(ctx, 1, 20); !errors.Is(err, interfaces.ErrArticleLocked) {
		t.Errorf("Expected ErrArticleLocked, got %v", err)
	}

	if err := storage.Checkin(ctx, 1); err != nil {
		t.Fatalf("Checkin failed: %v", err)
	}
	if err := storage.Checkout(ctx, 1, 20); err != nil {
		t.Errorf("Checkout after checkin failed: %v", err)
	}
}

func TestArticleTransactionCommit(t *testing.T) {
	db := newTestDB(t)
	storage := NewArticleStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.SaveArticle(ctx, &models.Article{ID: 1, IntroText: "before"}); err != nil {
		t.Fatal(err)
	}

	err := storage.WithTransaction(ctx, func(tx interfaces.ArticleTx) error {
		article, err := tx.Get(1)
		if err != nil {
			return err
		}
		article.IntroText = "after"
		return tx.Update(article)
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	got, err := storage.GetArticle(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.IntroText != "after" {
		t.Errorf("Expected committed text 'after', got %q", got.IntroText)
	}
}

func TestArticleTransactionRollback(t *testing.T) {
	db := newTestDB(t)
	storage := NewArticleStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.SaveArticle(ctx, &models.Article{ID: 1, IntroText: "before"}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := storage.WithTransaction(ctx, func(tx interfaces.ArticleTx) error {
		article, err := tx.Get(1)
		if err != nil {
			return err
		}
		article.IntroText = "after"
		if err := tx.Update(article); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	got, err := storage.GetArticle(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.IntroText != "before" {
		t.Errorf("Expected rolled-back text 'before', got %q", got.IntroText)
	}
}

func TestRedirectListPublished(t *testing.T) {
	db := newTestDB(t)
	storage := NewRedirectStorage(db, arbor.NewLogger())
	ctx := context.Background()

	published := &models.Redirect{OldURL: "old/a", NewURL: "new/a", Published: true}
	unpublished := &models.Redirect{OldURL: "old/b", NewURL: "new/b", Published: false}

	if err := storage.SaveRedirect(ctx, published); err != nil {
		t.Fatal(err)
	}
	if err := storage.SaveRedirect(ctx, unpublished); err != nil {
		t.Fatal(err)
	}

	// IDs are auto-assigned sequentially.
	if published.ID != 1 || unpublished.ID != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", published.ID, unpublished.ID)
	}

	list, err := storage.ListPublished(ctx)
	if err != nil {
		t.Fatalf("Failed to list published: %v", err)
	}
	if len(list) != 1 || list[0].OldURL != "old/a" {
		t.Errorf("Expected only the published redirect, got %v", list)
	}

	count, err := storage.CountPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 published redirect, got %d", count)
	}
}

func TestSessionSelectionLifecycle(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())
	ctx := context.Background()

	sess := &models.Session{ID: "sess_1", Token: "tok"}
	if err := storage.CreateSession(ctx, sess); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.GetSelection(ctx, "sess_1"); !errors.Is(err, interfaces.ErrNoPendingMatches) {
		t.Errorf("Expected ErrNoPendingMatches, got %v", err)
	}

	selection := &models.PendingSelection{
		SessionID: "sess_1",
		Matches:   []models.Match{{ID: 1, OldURL: "old/a", NewURL: "new/a"}},
	}
	if err := storage.SetSelection(ctx, selection); err != nil {
		t.Fatal(err)
	}

	got, err := storage.GetSelection(ctx, "sess_1")
	if err != nil {
		t.Fatalf("Failed to get selection: %v", err)
	}
	if len(got.Matches) != 1 || got.Matches[0].OldURL != "old/a" {
		t.Errorf("Unexpected selection: %v", got.Matches)
	}

	// Clearing twice is a no-op the second time.
	if err := storage.ClearSelection(ctx, "sess_1"); err != nil {
		t.Fatal(err)
	}
	if err := storage.ClearSelection(ctx, "sess_1"); err != nil {
		t.Errorf("Second clear should be a no-op, got %v", err)
	}

	if _, err := storage.GetSelection(ctx, "sess_1"); !errors.Is(err, interfaces.ErrNoPendingMatches) {
		t.Errorf("Expected ErrNoPendingMatches after clear, got %v", err)
	}
}
