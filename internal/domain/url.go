package domain

import (
	"net/url"
	"strings"
)

// internalSchemes are browser-owned pages that are never tracked.
var internalSchemes = []string{
	"chrome://",
	"chrome-extension://",
	"edge://",
	"brave://",
	"about:",
	"moz-extension://",
	"devtools://",
	"view-source:",
}

// IsTrackableURL reports whether a tab URL may start a tracking interval.
func IsTrackableURL(rawURL string) bool {
	if strings.TrimSpace(rawURL) == "" {
		return false
	}
	lower := strings.ToLower(rawURL)
	for _, prefix := range internalSchemes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

// StripWWW removes a single leading "www." label.
func StripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// ExtractDomain returns the host of rawURL without a leading "www.".
// Unparseable input falls back to the raw string.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return StripWWW(strings.ToLower(u.Hostname()))
}
