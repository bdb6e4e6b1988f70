package middleware

import (
	"net/http"
	"strings"
)

// UnknownClient is used when no proxy header identifies the caller. All
// such callers share one rate limit bucket.
const UnknownClient = "unknown"

// ClientIdentifier derives the rate limit key from proxy headers, in order:
// the first X-Forwarded-For entry, X-Real-IP, then CF-Connecting-IP.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	for _, header := range []string{"X-Real-IP", "CF-Connecting-IP"} {
		if ip := strings.TrimSpace(r.Header.Get(header)); ip != "" {
			return ip
		}
	}

	return UnknownClient
}
