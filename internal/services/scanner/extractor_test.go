package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/linkfix/internal/common"
)

func TestExtractBothQuoteStyles(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())

	text := `<p><a href="old/path">one</a> and <a href='other/page'>two</a></p>`
	urls := e.Extract(text)

	assert.Equal(t, []string{"old/path", "other/page"}, urls)
}

func TestExtractSkipsFragmentsAndMailto(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())

	text := `<a href="#section">anchor</a>
		<a href="mailto:someone@example.com">mail</a>
		<a href="contact/us">contact</a>`

	urls := e.Extract(text)
	assert.Equal(t, []string{"contact/us"}, urls)
}

func TestExtractSkipsMalformedTargets(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())

	tests := []struct {
		name string
		href string
	}{
		{"scheme behind front controller", "index.php/https:/example.com/page"},
		{"invalid character after front controller", "index.php/%20bad"},
		{"leading invalid character", "%20leading"},
		{"leading dot", "./relative"},
		{"root-relative path", "/about/us"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls := e.Extract(`<a href="` + tt.href + `">x</a>`)
			assert.Empty(t, urls)
		})
	}
}

func TestExtractAcceptsFrontControllerPaths(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())

	urls := e.Extract(`<a href="index.php/articles">x</a>`)
	assert.Equal(t, []string{"index.php/articles"}, urls)
}

func TestExtractQueryStringPolicies(t *testing.T) {
	text := `<a href="shop/item?id=12">buy</a><a href="plain/page">plain</a>`

	t.Run("strip cuts at the query", func(t *testing.T) {
		e := NewExtractor(common.QueryStringsStrip, arbor.NewLogger())
		assert.Equal(t, []string{"shop/item", "plain/page"}, e.Extract(text))
	})

	t.Run("ignore drops the whole link", func(t *testing.T) {
		e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())
		assert.Equal(t, []string{"plain/page"}, e.Extract(text))
	})

	t.Run("pass-through keeps the query intact", func(t *testing.T) {
		e := NewExtractor("keep", arbor.NewLogger())
		assert.Equal(t, []string{"shop/item?id=12", "plain/page"}, e.Extract(text))
	})
}

func TestExtractDeduplicatesPreservingOrder(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())

	text := `<a href="b/page">1</a><a href="a/page">2</a><a href="b/page">3</a>`
	urls := e.Extract(text)

	assert.Equal(t, []string{"b/page", "a/page"}, urls)
}

func TestExtractStripCollapsesDuplicates(t *testing.T) {
	// Two spellings that only differ in query string become one entry after
	// stripping.
	e := NewExtractor(common.QueryStringsStrip, arbor.NewLogger())

	text := `<a href="shop/item?id=1">a</a><a href="shop/item?id=2">b</a>`
	urls := e.Extract(text)

	assert.Equal(t, []string{"shop/item"}, urls)
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor(common.QueryStringsIgnore, arbor.NewLogger())
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("<p>no links here</p>"))
}
