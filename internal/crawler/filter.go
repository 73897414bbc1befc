package crawler

import (
	"net/url"
	"strings"
)

// InScope reports whether candidate is on base's host and its path begins with
// base's path. The prefix test is a plain string match, so /foo2 is in scope
// for /foo.
func InScope(candidate, base *url.URL) bool {
	return candidate.Hostname() == base.Hostname() &&
		strings.HasPrefix(candidate.Path, base.Path)
}

// relativePath rewrites an in-scope URL as a path relative to basePath,
// always with a leading slash.
func relativePath(u *url.URL, basePath string) string {
	rel := strings.TrimPrefix(u.Path, basePath)
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return rel
}

// stripQuery returns u without its query string or fragment.
func stripQuery(u *url.URL) *url.URL {
	clean := *u
	clean.RawQuery = ""
	clean.ForceQuery = false
	clean.Fragment = ""
	clean.RawFragment = ""
	return &clean
}
