package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "portal.example.com", extractOriginHost("https://portal.example.com"))
	assert.Equal(t, "localhost:5173", extractOriginHost("http://localhost:5173"))
	assert.Equal(t, "raw-value", extractOriginHost("raw-value"))
}

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"*.slidecast.app", "localhost:*"}
	assert.True(t, originAllowed(patterns, "https://portal.slidecast.app"))
	assert.True(t, originAllowed(patterns, "http://localhost:5173"))
	assert.False(t, originAllowed(patterns, "https://evil.example.com"))
	assert.False(t, originAllowed(nil, "https://portal.slidecast.app"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("portal.example.com", "portal.example.com"))
	assert.True(t, matchOriginPattern("*.example.com", "portal.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("localhost:*", "remotehost:5173"))
	assert.False(t, matchOriginPattern("portal.example.com", "other.example.com"))
}
