package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// MissingKey reports whether an API key is empty or one of the known
// placeholder values shipped in example .env files.
func MissingKey(key string, placeholders ...string) bool {
	k := strings.TrimSpace(key)
	if k == "" {
		return true
	}
	for _, p := range placeholders {
		if strings.EqualFold(k, p) {
			return true
		}
	}
	return strings.HasPrefix(k, "your_") && strings.HasSuffix(k, "_here")
}
