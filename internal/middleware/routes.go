package middleware

import "strings"

// MatchRoute reports whether the request method and path match any of
// the configured route entries.
//
// An entry is a path template, optionally prefixed with an HTTP method
// ("PUT /api/v1/users/{username}"). Entries without a method prefix
// match every method. A "{...}" segment matches exactly one non-empty
// concrete segment; all other segments must match literally.
func MatchRoute(entries []string, method, path string) bool {
	for _, entry := range entries {
		pattern := entry
		if m, p, found := strings.Cut(entry, " "); found {
			if !strings.EqualFold(m, method) {
				continue
			}
			pattern = p
		}
		if matchTemplate(pattern, path) {
			return true
		}
	}
	return false
}

func matchTemplate(pattern, path string) bool {
	if pattern == path {
		return true
	}
	if !strings.Contains(pattern, "{") {
		return false
	}

	patternSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(path, "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}
