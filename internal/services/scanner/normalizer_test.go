package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizerRejectsRelativeBase(t *testing.T) {
	_, err := NewNormalizer("not-a-url")
	assert.Error(t, err)

	_, err = NewNormalizer("/just/a/path")
	assert.Error(t, err)
}

func TestNormalizeRelativePath(t *testing.T) {
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/old/path", n.Normalize("old/path"))
}

func TestNormalizeAbsoluteUnchanged(t *testing.T) {
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/old/path", n.Normalize("http://example.com/old/path"))
}

func TestNormalizeRootRelativeJoinedVerbatim(t *testing.T) {
	// Paths starting with "/" are attached to the authority without any
	// cleaning; doubled slashes survive.
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/old//path", n.Normalize("/old//path"))
}

func TestNormalizeCollapsesSlashRuns(t *testing.T) {
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/old/path", n.Normalize("old//path"))
	assert.Equal(t, "http://example.com/old/path", n.Normalize(`old\path`))
}

func TestNormalizeWithBasePath(t *testing.T) {
	n, err := NewNormalizer("http://example.com/site")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/site/a/b", n.Normalize("a/b"))
}

func TestNormalizeEquivalentSpellings(t *testing.T) {
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	want := n.Normalize("old/path")
	assert.Equal(t, want, n.Normalize("old//path"))
	assert.Equal(t, want, n.Normalize("http://example.com/old/path"))
}

func TestNormalizeIdempotent(t *testing.T) {
	n, err := NewNormalizer("http://example.com/")
	require.NoError(t, err)

	for _, raw := range []string{"old/path", "/root/path", "http://example.com/x"} {
		once := n.Normalize(raw)
		assert.Equal(t, once, n.Normalize(once))
	}
}
