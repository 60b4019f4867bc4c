// Package crawl — filename rules.
// Provides the sanitizing applied to every filename derived from a URL
// before it touches the local filesystem.
package crawl

import "strings"

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-]
// with an underscore. Two different URLs whose filenames collide after
// sanitizing share one cached download; that is accepted policy, the
// cache key is the filename, not the content.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '_' || ch == '.' || ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
