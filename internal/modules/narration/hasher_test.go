package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash("doc-1", 2, 10, "slide text", "prev", "next")
	b := ContentHash("doc-1", 2, 10, "slide text", "prev", "next")
	assert.Equal(t, a, b)
	require.Len(t, a, 64)
}

func TestContentHashSensitivity(t *testing.T) {
	base := ContentHash("doc-1", 2, 10, "slide text", "prev", "next")

	cases := map[string]string{
		"pdf id":     ContentHash("doc-2", 2, 10, "slide text", "prev", "next"),
		"page":       ContentHash("doc-1", 3, 10, "slide text", "prev", "next"),
		"total":      ContentHash("doc-1", 2, 11, "slide text", "prev", "next"),
		"text":       ContentHash("doc-1", 2, 10, "slide text!", "prev", "next"),
		"prev slide": ContentHash("doc-1", 2, 10, "slide text", "other", "next"),
		"next slide": ContentHash("doc-1", 2, 10, "slide text", "prev", "other"),
	}
	for name, h := range cases {
		assert.NotEqual(t, base, h, "changing %s must change the hash", name)
	}
}

func TestContentHashEmptyNeighbors(t *testing.T) {
	withEmpty := ContentHash("doc-1", 1, 1, "only slide", "", "")
	withText := ContentHash("doc-1", 1, 1, "only slide", "x", "")
	assert.NotEqual(t, withEmpty, withText)
}
