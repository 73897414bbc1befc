package crawler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestInScope(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		base      string
		want      bool
	}{
		{name: "same host root", candidate: "http://site.test/about", base: "http://site.test", want: true},
		{name: "under base path", candidate: "http://site.test/docs/a", base: "http://site.test/docs", want: true},
		{name: "outside base path", candidate: "http://site.test/blog", base: "http://site.test/docs", want: false},
		{name: "literal prefix match", candidate: "http://site.test/docs2", base: "http://site.test/docs", want: true},
		{name: "other host", candidate: "http://other.test/docs/a", base: "http://site.test/docs", want: false},
		{name: "port ignored", candidate: "http://site.test:8080/a", base: "http://site.test", want: true},
		{name: "mailto has no host", candidate: "mailto:someone@site.test", base: "http://site.test", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InScope(mustParse(t, tt.candidate), mustParse(t, tt.base)))
		})
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		link     string
		basePath string
		want     string
	}{
		{link: "http://site.test/a/b", basePath: "", want: "/a/b"},
		{link: "http://site.test/", basePath: "", want: "/"},
		{link: "http://site.test", basePath: "", want: "/"},
		{link: "http://site.test/docs/a", basePath: "/docs", want: "/a"},
		{link: "http://site.test/docs", basePath: "/docs", want: "/"},
		{link: "http://site.test/docs2", basePath: "/docs", want: "/2"},
		{link: "http://site.test/a?page=2#top", basePath: "", want: "/a"},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, relativePath(mustParse(t, tt.link), tt.basePath))
		})
	}
}
