// -----------------------------------------------------------------------
// URL Normalizer - canonical absolute form for comparison
// -----------------------------------------------------------------------

package scanner

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// slashRun matches runs of forward or back slashes for path cleaning.
// Cleaning is a pure string operation; ".." segments are left alone.
var slashRun = regexp.MustCompile(`[/\\]+`)

// Normalizer canonicalizes URLs (relative or absolute) against the site's
// base URI. Two spellings of the same resource must normalize to the same
// string - matching depends on it.
type Normalizer struct {
	baseURL  string // full base string used for the already-absolute check
	baseRoot string // scheme://host[:port]
	basePath string // path component of the base, "/" when empty
}

// NewNormalizer parses the site base URL into the components normalization
// combines with.
func NewNormalizer(baseURL string) (*Normalizer, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("site base URL %q must be absolute", baseURL)
	}

	basePath := parsed.Path
	if basePath == "" {
		basePath = "/"
	}

	return &Normalizer{
		baseURL:  baseURL,
		baseRoot: fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host),
		basePath: basePath,
	}, nil
}

// BaseURL returns the configured site base.
func (n *Normalizer) BaseURL() string {
	return n.baseURL
}

// Normalize returns the single absolute form of rawURL. Already-absolute
// inputs (base-prefixed) pass through unchanged, root-relative paths are
// joined to the site authority, and everything else is resolved against the
// base path with redundant slashes collapsed.
func (n *Normalizer) Normalize(rawURL string) string {
	if strings.HasPrefix(rawURL, n.baseURL) {
		return rawURL
	}

	if strings.HasPrefix(rawURL, "/") {
		return n.baseRoot + rawURL
	}

	return n.baseRoot + cleanPath(n.basePath+"/"+rawURL)
}

// cleanPath trims surrounding whitespace and collapses slash runs into a
// single separator.
func cleanPath(p string) string {
	return slashRun.ReplaceAllString(strings.TrimSpace(p), "/")
}
