// -----------------------------------------------------------------------
// Link report - DOM-accurate per-article link inventory for review
// -----------------------------------------------------------------------

package scanner

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/linkfix/internal/models"
)

// LinkInfo describes one anchor found in an article body. Unlike the
// extractor, the report parses the HTML properly and lists every anchor,
// including the ones extraction filters out, so the review screen can show
// the administrator what was skipped and why it would or would not match.
type LinkInfo struct {
	Href       string `json:"href"`
	Text       string `json:"text"`
	Normalized string `json:"normalized"`
	Eligible   bool   `json:"eligible"` // survives extraction filtering
	Matched    bool   `json:"matched"`  // matches a published redirect
	NewURL     string `json:"new_url,omitempty"`
}

// LinkReport parses the article's combined body and inventories its anchors
// against the published redirect rules.
func (s *Service) LinkReport(ctx context.Context, id int) ([]LinkInfo, error) {
	article, err := s.articles.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article %d content: %w", id, err)
	}

	report := &models.Report{}
	ruleMap := s.publishedRuleMap(ctx, article.ID, report)

	eligible := make(map[string]bool)
	for _, u := range s.extractor.Extract(article.Content()) {
		eligible[u] = true
	}

	var links []LinkInfo
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		info := LinkInfo{
			Href:       href,
			Text:       strings.TrimSpace(sel.Text()),
			Normalized: s.normalizer.Normalize(href),
			Eligible:   eligible[href],
		}

		if newURL, ok := ruleMap[info.Normalized]; ok && info.Eligible {
			info.Matched = true
			info.NewURL = newURL
		}

		links = append(links, info)
	})

	s.logger.Debug().
		Int("article_id", id).
		Int("links", len(links)).
		Msg("Link report generated")

	return links, nil
}
