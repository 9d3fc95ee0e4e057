// -----------------------------------------------------------------------
// Article Scanner - extraction + normalization + redirect matching
// -----------------------------------------------------------------------

package scanner

import (
	"context"
	"errors"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/interfaces"
	"github.com/ternarybob/linkfix/internal/models"
)

// Service orchestrates link extraction, URL normalization and redirect
// matching over the content store.
type Service struct {
	articles   interfaces.ArticleStorage
	redirects  interfaces.RedirectStorage
	extractor  *Extractor
	normalizer *Normalizer
	logger     arbor.ILogger
}

// NewService creates a scanner over the given stores.
func NewService(articles interfaces.ArticleStorage, redirects interfaces.RedirectStorage, extractor *Extractor, normalizer *Normalizer, logger arbor.ILogger) *Service {
	return &Service{
		articles:   articles,
		redirects:  redirects,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Extractor returns the configured extractor.
func (s *Service) Extractor() *Extractor {
	return s.extractor
}

// Normalizer returns the configured normalizer.
func (s *Service) Normalizer() *Normalizer {
	return s.normalizer
}

// ScanArticle scans one article for URLs matching published redirects.
// Failures are isolated: the article that cannot be loaded yields an empty
// result and a report message, never an error.
func (s *Service) ScanArticle(ctx context.Context, id int, report *models.Report) []models.Match {
	article, err := s.articles.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrArticleNotFound) {
			s.logger.Warn().Int("article_id", id).Msg("Article not found during scan")
			report.Warnf("Article %d not found", id)
		} else {
			s.logger.Warn().Err(err).Int("article_id", id).Msg("Failed to load article during scan")
			report.Errorf("Article %d could not be loaded: %v", id, err)
		}
		return nil
	}

	return s.MatchArticle(ctx, article, report)
}

// MatchArticle matches an already-loaded article against the published
// redirect rules. The fixer calls this with the transaction's fresh view of
// the record so approvals are always intersected with current content.
func (s *Service) MatchArticle(ctx context.Context, article *models.Article, report *models.Report) []models.Match {
	urls := s.extractor.Extract(article.Content())
	if len(urls) == 0 {
		return nil // No URLs found in the article
	}

	ruleMap := s.publishedRuleMap(ctx, article.ID, report)
	if len(ruleMap) == 0 {
		return nil
	}

	var matches []models.Match
	for _, rawURL := range urls {
		if newURL, ok := ruleMap[s.normalizer.Normalize(rawURL)]; ok {
			matches = append(matches, models.Match{
				ID:     article.ID,
				Title:  article.Title,
				OldURL: rawURL,
				NewURL: newURL,
			})
		}
	}

	return matches
}

// ScanAll scans every article in the store, concatenating matches. One
// article failing never aborts the rest of the pass.
func (s *Service) ScanAll(ctx context.Context, report *models.Report) []models.Match {
	ids, err := s.articles.ListArticleIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list article IDs for corpus scan")
		report.Errorf("Failed to list articles: %v", err)
		return nil
	}

	if len(ids) == 0 {
		report.Warnf("No articles found")
		return nil
	}

	var results []models.Match
	for _, id := range ids {
		if matches := s.ScanArticle(ctx, id, report); len(matches) > 0 {
			results = append(results, matches...)
		}
	}

	s.logger.Info().
		Int("articles", len(ids)).
		Int("matches", len(results)).
		Msg("Corpus scan completed")

	return results
}

// publishedRuleMap fetches, validates and normalizes the published redirect
// rules into the matching lookup. Empty results add a per-article warning.
func (s *Service) publishedRuleMap(ctx context.Context, articleID int, report *models.Report) map[string]string {
	redirects, err := s.redirects.ListPublished(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch published redirects")
		report.Errorf("Failed to fetch redirects: %v", err)
		return nil
	}

	if len(redirects) == 0 {
		report.Warnf("No redirects to process for article %d", articleID)
		return nil
	}

	ruleMap := s.RuleMap(s.ValidRules(redirects))
	if len(ruleMap) == 0 {
		report.Warnf("No valid redirects for article %d", articleID)
		return nil
	}

	return ruleMap
}
