// -----------------------------------------------------------------------
// Redirect rule validation and normalized lookup map
// -----------------------------------------------------------------------

package scanner

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ternarybob/linkfix/internal/models"
)

// absolutePattern classifies a rule's old URL as absolute.
var absolutePattern = regexp.MustCompile(`(?i)^https?://`)

// ValidRules filters raw redirects down to the rules eligible for matching:
// fields trimmed, absolute old URLs required to sit under the site base and
// be well formed. Relative rules pass through; later normalization settles
// their validity.
func (s *Service) ValidRules(redirects []*models.Redirect) []models.RedirectRule {
	var rules []models.RedirectRule

	for _, redirect := range redirects {
		oldURL := strings.TrimSpace(redirect.OldURL)
		newURL := strings.TrimSpace(redirect.NewURL)

		if absolutePattern.MatchString(oldURL) {
			// Redirects pointing at external sites never match inside
			// this tool.
			if !strings.HasPrefix(oldURL, s.normalizer.BaseURL()) {
				continue
			}
			if !isWellFormedURL(oldURL) {
				continue
			}
		}

		rules = append(rules, models.RedirectRule{OldURL: oldURL, NewURL: newURL})
	}

	return rules
}

// RuleMap builds the normalized-old-URL to new-URL lookup used for
// matching. Rules with an empty side are dropped; colliding normalized
// keys overwrite.
func (s *Service) RuleMap(rules []models.RedirectRule) map[string]string {
	ruleMap := make(map[string]string, len(rules))
	for _, rule := range rules {
		if rule.OldURL == "" || rule.NewURL == "" {
			continue
		}
		ruleMap[s.normalizer.Normalize(rule.OldURL)] = rule.NewURL
	}
	return ruleMap
}

func isWellFormedURL(rawURL string) bool {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
