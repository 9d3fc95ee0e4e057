// -----------------------------------------------------------------------
// URL Extractor - href harvesting from article bodies
// -----------------------------------------------------------------------

package scanner

import (
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
)

// Extraction patterns. The accept/reject behavior of these expressions is
// load-bearing: matching decides which literal substrings are eligible for
// rewriting, so the patterns are kept exactly as the platform has always
// applied them rather than re-derived. RE2 has no backreferences, so the
// two quote styles are separate alternation branches.
var (
	// hrefPattern captures the value of href="..." or href='...'
	// (case-insensitive attribute name, either quote style).
	hrefPattern = regexp.MustCompile(`(?i)href=(?:"([^"]*)"|'([^']*)')`)

	// malformedPattern rejects router-mangled targets (a scheme nested
	// behind the front-controller path) and anything opening with a
	// character outside the site's path alphabet.
	malformedPattern = regexp.MustCompile(`(?i)^index\.php/https?:/|^index\.php/[^a-zA-Z0-9/_-]|^[^a-zA-Z0-9/_-]`)

	// relativePattern accepts same-site-shaped paths: slash-separated
	// segments of [a-zA-Z0-9_-], optionally behind the front controller.
	// This is a prefix match, not a full match; a leading segment is enough.
	relativePattern = regexp.MustCompile(`(?i)^(?:[a-zA-Z0-9_-]+(?:/[a-zA-Z0-9_-]+)*|index\.php/[a-zA-Z0-9_-]+)`)
)

// Extractor pulls candidate link targets out of raw article HTML.
type Extractor struct {
	queryStrings string
	logger       arbor.ILogger
}

// NewExtractor creates an extractor with the configured query-string policy.
func NewExtractor(queryStrings string, logger arbor.ILogger) *Extractor {
	return &Extractor{
		queryStrings: queryStrings,
		logger:       logger,
	}
}

// Extract returns the unique href values found in text, insertion order
// preserved. Fragment-only and mailto targets are dropped, as are malformed
// and non-relative shapes; the query-string policy is applied last.
func (e *Extractor) Extract(text string) []string {
	var urls []string
	seen := make(map[string]bool)

	for _, m := range hrefPattern.FindAllStringSubmatch(text, -1) {
		href := m[1]
		if href == "" {
			href = m[2]
		}

		if strings.HasPrefix(href, "#") {
			continue // Fragment-only target (e.g. #anchor)
		}

		if strings.HasPrefix(href, "mailto:") {
			continue
		}

		if malformedPattern.MatchString(href) {
			continue
		}

		if !relativePattern.MatchString(href) {
			continue
		}

		if q := strings.Index(href, "?"); q >= 0 {
			switch e.queryStrings {
			case common.QueryStringsStrip:
				href = href[:q]
			case common.QueryStringsIgnore:
				continue
			}
		}

		if !seen[href] {
			seen[href] = true
			urls = append(urls, href)
		}
	}

	return urls
}
