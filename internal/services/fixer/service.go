// -----------------------------------------------------------------------
// Fixer - transactional in-place rewrite of approved link matches
// -----------------------------------------------------------------------

package fixer

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
	"github.com/ternarybob/linkfix/internal/services/scanner"
	"github.com/ternarybob/linkfix/internal/services/session"
)

// Service applies user-approved link replacements to stored articles.
// Every batch runs inside one transaction scope: a persistence failure
// rolls back the whole batch and reports zero updates.
type Service struct {
	articles interfaces.ArticleStorage
	scanner  *scanner.Service
	sessions *session.Service
	logger   arbor.ILogger
}

// NewService creates a fixer over the given article store and scanner.
func NewService(articles interfaces.ArticleStorage, scan *scanner.Service, sessions *session.Service, logger arbor.ILogger) *Service {
	return &Service{
		articles: articles,
		scanner:  scan,
		sessions: sessions,
		logger:   logger,
	}
}

// UpdateAll applies the approved edits of every submitted article inside a
// single transaction. Returns the number of articles actually rewritten;
// any persistence failure rolls the whole batch back and returns zero.
func (s *Service) UpdateAll(ctx context.Context, sessionID string, req *models.FixRequest, report *models.Report) int {
	if len(req.Articles) == 0 {
		report.Warnf("No articles submitted")
		return 0
	}

	var allMatches []models.Match
	var updated []int

	err := s.articles.WithTransaction(ctx, func(tx interfaces.ArticleTx) error {
		for _, entry := range req.Articles {
			filtered, ok := s.prepareEntry(ctx, tx, entry, report)
			if !ok {
				continue
			}

			allMatches = append(allMatches, filtered...)

			if err := s.rewriteArticle(tx, entry.ID, filtered, report, &updated); err != nil {
				return err
			}
		}
		return nil
	})

	s.storeSelection(ctx, sessionID, allMatches)

	if err != nil {
		s.logger.Error().Err(err).Msg("Bulk update rolled back")
		report.Errorf("Update failed: %v", err)
		return 0
	}

	s.logger.Info().Int("updated", len(updated)).Msg("Bulk update committed")
	return len(updated)
}

// UpdateSingle applies the approved edits of the one article matching
// articleID, each target entry in its own transaction scope.
func (s *Service) UpdateSingle(ctx context.Context, sessionID string, req *models.FixRequest, articleID int, report *models.Report) int {
	var targets []models.ArticleEdit
	for _, entry := range req.Articles {
		if entry.ID == articleID {
			targets = append(targets, entry)
		}
	}

	if len(targets) == 0 {
		report.Errorf("Article %d not found in submitted data", articleID)
		return 0
	}

	var allMatches []models.Match
	var updated []int

	for _, entry := range targets {
		err := s.articles.WithTransaction(ctx, func(tx interfaces.ArticleTx) error {
			filtered, ok := s.prepareEntry(ctx, tx, entry, report)
			if !ok {
				return nil
			}

			allMatches = append(allMatches, filtered...)

			return s.rewriteArticle(tx, entry.ID, filtered, report, &updated)
		})

		if err != nil {
			s.logger.Error().Err(err).Int("article_id", articleID).Msg("Single update rolled back")
			report.Errorf("Update failed: %v", err)
			s.storeSelection(ctx, sessionID, allMatches)
			return 0
		}
	}

	s.storeSelection(ctx, sessionID, allMatches)
	return len(updated)
}

// prepareEntry validates one submitted entry, re-scans the article through
// the transaction's view of the store and intersects the fresh matches with
// the submitted approvals by normalized old URL. The approved new URL
// overrides the rescanned rule's target.
func (s *Service) prepareEntry(ctx context.Context, tx interfaces.ArticleTx, entry models.ArticleEdit, report *models.Report) ([]models.Match, bool) {
	if entry.ID <= 0 || len(entry.URLs) == 0 {
		report.Warnf("Invalid article data submitted for article %d", entry.ID)
		return nil, false
	}

	approved := s.approvedMap(entry.URLs)
	if len(approved) == 0 {
		report.Warnf("No valid URLs submitted for article %d", entry.ID)
		return nil, false
	}

	article, err := tx.Get(entry.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int("article_id", entry.ID).Msg("Failed to load article for fix")
		report.Warnf("Article %d not found", entry.ID)
		return nil, false
	}

	matches := s.scanner.MatchArticle(ctx, article, report)
	if len(matches) == 0 {
		report.Warnf("No URLs found in article %d", entry.ID)
		return nil, false
	}

	var filtered []models.Match
	for _, match := range matches {
		if edit, ok := approved[s.scanner.Normalizer().Normalize(match.OldURL)]; ok {
			filtered = append(filtered, models.Match{
				ID:     match.ID,
				Title:  match.Title,
				OldURL: match.OldURL,
				NewURL: edit.NewURL,
			})
		}
	}

	if len(filtered) == 0 {
		report.Warnf("No scanned URLs matched the submitted approvals for article %d", entry.ID)
		return nil, false
	}

	return filtered, true
}

// approvedMap keys the submitted edits by normalized old URL. Entries
// missing either side are dropped.
func (s *Service) approvedMap(urls []models.URLEdit) map[string]models.URLEdit {
	approved := make(map[string]models.URLEdit, len(urls))
	for _, edit := range urls {
		oldURL := strings.TrimSpace(edit.OldURL)
		newURL := strings.TrimSpace(edit.NewURL)
		if oldURL == "" || newURL == "" {
			continue
		}
		approved[s.scanner.Normalizer().Normalize(oldURL)] = models.URLEdit{OldURL: oldURL, NewURL: newURL}
	}
	return approved
}

// rewriteArticle performs the in-place substitution for one article inside
// the transaction. Lock conflicts and vanished matches are per-record
// warnings; a store failure is returned and aborts the enclosing batch.
func (s *Service) rewriteArticle(tx interfaces.ArticleTx, articleID int, matches []models.Match, report *models.Report, updated *[]int) error {
	article, err := tx.Get(articleID)
	if err != nil {
		s.logger.Warn().Err(err).Int("article_id", articleID).Msg("Failed to load article for rewrite")
		report.Errorf("Article %d could not be loaded", articleID)
		return nil
	}

	// Don't modify articles another editing session holds.
	if article.IsCheckedOut() {
		report.Errorf("Article %d is checked out by another session", articleID)
		return nil
	}

	// Re-extract from the fresh text, not the scanned snapshot. Approvals
	// from an earlier scan are never applied blindly.
	urls := s.scanner.Extractor().Extract(article.Content())
	if len(urls) == 0 {
		report.Warnf("No URLs matched in article %d", articleID)
		return nil
	}

	urlMatched := false

	for _, match := range matches {
		oldURL := strings.TrimSpace(match.OldURL)
		newURL := strings.TrimSpace(match.NewURL)

		if match.ID == 0 || oldURL == "" || newURL == "" {
			report.Warnf("Missing replacement data for article %d", articleID)
			continue
		}

		normalizedOld := s.scanner.Normalizer().Normalize(oldURL)

		for _, extracted := range urls {
			if s.scanner.Normalizer().Normalize(extracted) == normalizedOld {
				// Literal replacement of the extracted spelling, applied
				// to both bodies independently. A substring occurrence
				// inside a larger token is replaced too; accepted
				// limitation of the literal approach.
				article.IntroText = strings.ReplaceAll(article.IntroText, extracted, newURL)
				article.FullText = strings.ReplaceAll(article.FullText, extracted, newURL)
				urlMatched = true
			}
		}
	}

	if !urlMatched {
		report.Warnf("No URLs matched in article %d", articleID)
		return nil
	}

	// Release any lock this tool holds before persisting.
	article.CheckedOut = 0
	article.CheckedOutTime = nil

	if err := tx.Update(article); err != nil {
		s.logger.Error().Err(err).Int("article_id", articleID).Msg("Failed to store rewritten article")
		return err
	}

	*updated = append(*updated, articleID)

	s.logger.Info().
		Int("article_id", articleID).
		Int("replacements", len(matches)).
		Msg("Article links rewritten")

	return nil
}

// storeSelection records the filtered matches as the session's pending
// selection so the review screen reflects what the fix pass acted on.
func (s *Service) storeSelection(ctx context.Context, sessionID string, matches []models.Match) {
	if sessionID == "" || s.sessions == nil {
		return
	}
	if err := s.sessions.SetSelection(ctx, sessionID, matches); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to update pending selection after fix")
	}
}
