package config

import "strings"

// NormalizePaths gives every path a leading slash and strips one trailing line
// terminator. Order and duplicates are preserved.
func NormalizePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, chomp(p))
	}
	return out
}

// chomp removes a single trailing "\r\n", "\n" or "\r".
func chomp(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1]
	}
	return s
}
