// Package deeplink translates custom-scheme URIs onto the configured web
// origin and hands runtime deliveries over to the running instance.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"
)

// Localize maps a custom-scheme URI onto base. The URI's authority becomes
// the first path segment, its path follows, and the query is carried over
// verbatim (not re-encoded). The path stays percent-encoded: decoding it
// would turn %2F into an extra separator and change the segment structure.
// The function is total: any parsed URI yields a result. Bases with and
// without a trailing slash localize identically.
func Localize(u *url.URL, base string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))

	if host := strings.Trim(u.Host, "/"); host != "" {
		b.WriteByte('/')
		b.WriteString(host)
	}
	if path := strings.TrimLeft(u.EscapedPath(), "/"); path != "" {
		b.WriteByte('/')
		b.WriteString(path)
	}
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	return b.String()
}

// LocalizeRaw parses raw as a URI and localizes it onto base.
func LocalizeRaw(raw, base string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse deep link: %w", err)
	}
	return Localize(u, base), nil
}
