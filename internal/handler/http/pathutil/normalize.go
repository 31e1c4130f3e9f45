// Package pathutil collapses dynamic URL segments so metrics labels stay bounded.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Evaluated in order; static routes such as /api/news/sources and /api/news/refresh
// never match and pass through unchanged.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/news/\d{4}-\d{2}-\d{2}$`), Template: "/api/news/:date"},
	{Pattern: regexp.MustCompile(`^/api/news/sources/[^/]+$`), Template: "/api/news/sources/:id"},
	{Pattern: regexp.MustCompile(`^/api/audio/[^/]+$`), Template: "/api/audio/:file"},
}

// NormalizePath maps e.g. /api/audio/inworld-1767225600000.mp3 to /api/audio/:file.
// Query strings and a trailing slash are ignored. Unknown paths are returned as-is.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
