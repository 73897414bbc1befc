package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site serves fixed HTML pages and counts the requests for each path.
type site struct {
	mu       sync.Mutex
	pages    map[string]string
	requests map[string]int
}

func newSite(t *testing.T, pages map[string]string) (*site, *httptest.Server) {
	t.Helper()
	s := &site{pages: pages, requests: make(map[string]int)}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests[r.URL.Path]++
	page, ok := s.pages[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *site) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func (s *site) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.requests {
		n += c
	}
	return n
}

func html(links ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, l, l)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func crawl(t *testing.T, base string, depth int, opts ...Option) (map[string][]byte, *Crawler) {
	t.Helper()
	c, err := New(base, opts...)
	require.NoError(t, err)

	found, err := c.Crawl(context.Background(), depth)
	require.NoError(t, err)
	return found, c
}

func TestCrawl_SinglePage(t *testing.T) {
	page := html()
	_, srv := newSite(t, map[string]string{"/": page})

	found, _ := crawl(t, srv.URL, 1)

	assert.Equal(t, map[string][]byte{"/": []byte(page)}, found)
}

func TestCrawl_CycleTerminates(t *testing.T) {
	s, srv := newSite(t, map[string]string{
		"/":  html("/a"),
		"/a": html("/", "/a"),
	})

	found, c := crawl(t, srv.URL, DefaultDepth)

	require.Len(t, found, 2)
	assert.NotNil(t, found["/"])
	assert.NotNil(t, found["/a"])
	assert.Equal(t, 1, s.count("/"))
	assert.Equal(t, 1, s.count("/a"))
	assert.Equal(t, 2, c.Stats().PagesFetched)
}

func TestCrawl_FailedFetchIsAbsent(t *testing.T) {
	_, srv := newSite(t, map[string]string{
		"/": html("/a"),
	})

	found, c := crawl(t, srv.URL, DefaultDepth)

	require.Len(t, found, 2)
	assert.NotNil(t, found["/"])
	body, ok := found["/a"]
	assert.True(t, ok)
	assert.Nil(t, body)
	assert.Equal(t, 1, c.Stats().FetchErrors)
}

func TestCrawl_ZeroDepthIssuesNoFetch(t *testing.T) {
	s, srv := newSite(t, map[string]string{"/": html("/a")})

	found, _ := crawl(t, srv.URL, 0)

	assert.Equal(t, map[string][]byte{"/": nil}, found)
	assert.Equal(t, 0, s.total())
}

func TestCrawl_DepthLimit(t *testing.T) {
	s, srv := newSite(t, map[string]string{
		"/":  html("/a"),
		"/a": html("/b"),
		"/b": html("/c"),
	})

	found, _ := crawl(t, srv.URL, 2)

	assert.Len(t, found, 3)
	assert.NotNil(t, found["/a"])
	body, ok := found["/b"]
	assert.True(t, ok, "a path discovered with no depth left is still recorded")
	assert.Nil(t, body)
	assert.NotContains(t, found, "/c")
	assert.Equal(t, 0, s.count("/b"))
}

func TestCrawl_ScopeAndRelativePaths(t *testing.T) {
	_, srv := newSite(t, map[string]string{
		"/docs/":       html("a", "/docs/b?x=1#top", "/blog", "http://elsewhere.test/docs/c", "mailto:x@y.test"),
		"/docs/a":      html("a/sub/"),
		"/docs/b":      html(),
		"/docs/a/sub/": html("../../"),
	})

	found, c := crawl(t, srv.URL+"/docs/", DefaultDepth)

	assert.ElementsMatch(t, []string{"/", "/a", "/b", "/a/sub/"}, keys(found))
	for path, body := range found {
		assert.NotNil(t, body, path)
	}
	assert.Equal(t, srv.URL+"/docs/a/sub/", c.PageURL("/a/sub/").String())
	assert.Equal(t, 3, c.Stats().LinksSkipped)
}

func TestCrawl_SiblingPrefixFetchesDiscoveredURL(t *testing.T) {
	s, srv := newSite(t, map[string]string{
		"/docs/":       html("/docs2?v=1#top", "/docs/a"),
		"/docs2":       "sibling " + html("docs2/child"),
		"/docs/a":      html(),
		"/docs2/child": html(),
	})

	found, c := crawl(t, srv.URL+"/docs", DefaultDepth)

	assert.ElementsMatch(t, []string{"/", "/2", "/a", "/2/child"}, keys(found))
	require.NotNil(t, found["/2"])
	assert.Contains(t, string(found["/2"]), "sibling")
	assert.NotNil(t, found["/2/child"], "links on /docs2 resolve against /docs2")
	assert.Equal(t, 1, s.count("/docs2"))
	assert.Equal(t, 0, s.count("/docs/2"))
	assert.Equal(t, srv.URL+"/docs2", c.PageURL("/2").String())
}

func TestCrawl_SendsUserAgent(t *testing.T) {
	var (
		mu     sync.Mutex
		agents []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.UserAgent())
		mu.Unlock()
		fmt.Fprint(w, html("/a"))
	}))
	t.Cleanup(srv.Close)

	crawl(t, srv.URL, 2, WithUserAgent("sitediff-test/1.0"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, agents, 2)
	for _, ua := range agents {
		assert.Equal(t, "sitediff-test/1.0", ua)
	}
}

func TestCrawl_RespectsWorkerLimit(t *testing.T) {
	const pages = 30
	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
	)

	links := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		links = append(links, fmt.Sprintf("/p%d", i))
	}
	root := html(links...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > maxSeen {
			maxSeen = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		if r.URL.Path == "/" {
			fmt.Fprint(w, root)
			return
		}
		fmt.Fprint(w, html())
	}))
	t.Cleanup(srv.Close)

	found, c := crawl(t, srv.URL, 2, WithWorkers(3))

	assert.Len(t, found, pages+1)
	assert.Equal(t, pages+1, c.Stats().PagesFetched)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, maxSeen, 3)
}

func TestCrawl_CancelledContext(t *testing.T) {
	s, srv := newSite(t, map[string]string{"/": html("/a")})
	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	found, err := c.Crawl(ctx, DefaultDepth)
	require.NoError(t, err)

	assert.Equal(t, map[string][]byte{"/": nil}, found)
	assert.Equal(t, 0, s.total())
}

func TestCrawl_CustomLinkExtractor(t *testing.T) {
	_, srv := newSite(t, map[string]string{
		"/":       "ignored",
		"/hidden": "also ignored",
	})

	extractor := func(body []byte) ([]string, error) {
		if string(body) == "ignored" {
			return []string{"/hidden"}, nil
		}
		return nil, nil
	}

	found, _ := crawl(t, srv.URL, DefaultDepth, WithLinkExtractor(extractor))

	assert.Equal(t, map[string][]byte{
		"/":       []byte("ignored"),
		"/hidden": []byte("also ignored"),
	}, found)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "/relative/only", "://bad"} {
		_, err := New(base)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, base)
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
