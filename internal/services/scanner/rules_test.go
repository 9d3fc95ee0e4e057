package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
	"github.com/ternarybob/linkfix/internal/models"
)

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	logger := arbor.NewLogger()
	normalizer, err := NewNormalizer(baseURL)
	require.NoError(t, err)
	extractor := NewExtractor(common.QueryStringsIgnore, logger)
	return NewService(nil, nil, extractor, normalizer, logger)
}

func TestValidRulesTrimsFields(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	rules := s.ValidRules([]*models.Redirect{
		{OldURL: "  old/path  ", NewURL: " new/path "},
	})

	require.Len(t, rules, 1)
	assert.Equal(t, "old/path", rules[0].OldURL)
	assert.Equal(t, "new/path", rules[0].NewURL)
}

func TestValidRulesSkipsExternalAbsolutes(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	rules := s.ValidRules([]*models.Redirect{
		{OldURL: "https://other-site.com/page", NewURL: "new/page"},
		{OldURL: "http://example.com/page", NewURL: "new/page"},
	})

	require.Len(t, rules, 1)
	assert.Equal(t, "http://example.com/page", rules[0].OldURL)
}

func TestValidRulesSkipsMalformedAbsolutes(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	rules := s.ValidRules([]*models.Redirect{
		{OldURL: "http://example.com/%zz-page", NewURL: "new/page"},
	})

	assert.Empty(t, rules)
}

func TestValidRulesPassesRelativeThrough(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	rules := s.ValidRules([]*models.Redirect{
		{OldURL: "old/page", NewURL: "new/page"},
	})

	require.Len(t, rules, 1)
}

func TestRuleMapKeysByNormalizedOldURL(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	ruleMap := s.RuleMap([]models.RedirectRule{
		{OldURL: "old/page", NewURL: "new/page"},
	})

	assert.Equal(t, "new/page", ruleMap["http://example.com/old/page"])
}

func TestRuleMapDropsEmptySides(t *testing.T) {
	s := newTestService(t, "http://example.com/")

	ruleMap := s.RuleMap([]models.RedirectRule{
		{OldURL: "", NewURL: "new/page"},
		{OldURL: "old/page", NewURL: ""},
	})

	assert.Empty(t, ruleMap)
}

func TestRuleMapEquivalentSpellingsCollide(t *testing.T) {
	// Later rules overwrite earlier ones when their old URLs normalize to
	// the same key.
	s := newTestService(t, "http://example.com/")

	ruleMap := s.RuleMap([]models.RedirectRule{
		{OldURL: "old/page", NewURL: "first"},
		{OldURL: "old//page", NewURL: "second"},
	})

	require.Len(t, ruleMap, 1)
	assert.Equal(t, "second", ruleMap["http://example.com/old/page"])
}
