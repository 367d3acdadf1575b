package app

import (
	"strings"
)

// originAllowed reports whether the Origin header value matches any of the
// configured patterns. Patterns match the host part only, so the scheme a
// browser sends never has to be listed in config.
func originAllowed(patterns []string, origin string) bool {
	host := extractOriginHost(origin)
	for _, pattern := range patterns {
		if matchOriginPattern(pattern, host) {
			return true
		}
	}
	return false
}

// extractOriginHost strips the scheme from an origin value, leaving
// "host[:port]". Values without a scheme pass through unchanged.
func extractOriginHost(origin string) string {
	if _, rest, ok := strings.Cut(origin, "://"); ok {
		host, _, _ := strings.Cut(rest, "/")
		return host
	}
	return origin
}

// matchOriginPattern matches a host against one config pattern. Three forms
// are accepted: an exact host, "*.domain" for any subdomain, and "host:*"
// for any port on a fixed host.
func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, strings.TrimPrefix(pattern, "*"))
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, strings.TrimSuffix(pattern, "*"))
	default:
		return false
	}
}
