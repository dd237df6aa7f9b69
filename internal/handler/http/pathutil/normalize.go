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

// pathPatterns defines the list of patterns for dynamic routes,
// pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/get_new_detail/\d+$`), Template: "/get_new_detail/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with IDs (e.g.
// /get_new_detail/123) to template format (e.g. /get_new_detail/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/get_new_detail/123")      // "/get_new_detail/:id"
//	NormalizePath("/get_news")                // "/get_news" (unchanged)
//	NormalizePath("/health")                  // "/health" (unchanged)
//	NormalizePath("/get_new_detail/123?x=1")  // "/get_new_detail/:id"
//	NormalizePath("/get_new_detail/123/")     // "/get_new_detail/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /health and /metrics pass through unchanged
	return path
}
