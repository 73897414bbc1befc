package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/deploymenttheory/go-site-diff/internal/logger"
	"github.com/gocolly/colly/v2"
)

const (
	// DefaultDepth is the number of hops followed from the base URL.
	DefaultDepth = 3
	// DefaultWorkers caps the number of in-flight requests.
	DefaultWorkers = 10
)

const (
	ctxRel   = "sitediff.rel"
	ctxURL   = "sitediff.url"
	ctxDepth = "sitediff.depth"
)

// ErrInvalidBaseURL is returned when the crawl base is not an absolute URL.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// Stats holds crawler statistics
type Stats struct {
	PathsFound   int
	PagesFetched int
	FetchErrors  int
	LinksSkipped int
	Duration     time.Duration
}

// Crawler discovers the paths reachable from a base URL. A Crawler runs one
// crawl at a time.
type Crawler struct {
	base      *url.URL
	basePath  string
	workers   int
	delay     time.Duration
	userAgent string
	extract   LinkExtractor

	// mu serializes fetch completions; found, urls and stats are only touched under it
	mu    sync.Mutex
	found map[string][]byte
	urls  map[string]*url.URL
	stats Stats
}

// Option configures a Crawler
type Option func(*Crawler)

// WithWorkers sets the maximum number of concurrent requests.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithDelay sets a pause between requests.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.delay = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Crawler) {
		c.userAgent = ua
	}
}

// WithLinkExtractor replaces the HTML link extractor.
func WithLinkExtractor(fn LinkExtractor) Option {
	return func(c *Crawler) {
		c.extract = fn
	}
}

// New creates a new Crawler rooted at base
func New(base string, opts ...Option) (*Crawler, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	c := &Crawler{
		base:     u,
		basePath: strings.TrimSuffix(u.Path, "/"),
		workers:  DefaultWorkers,
		extract:  ExtractLinks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Crawl fetches the base page and follows in-scope links up to maxDepth hops.
// The result maps every discovered path, relative to the base and starting
// with "/", to its body. A nil body means the path was found but not fetched,
// either because the fetch failed or the depth was exhausted. Failed fetches
// do not fail the crawl.
//
// Once ctx is done no new requests are issued; in-flight requests finish.
func (c *Crawler) Crawl(ctx context.Context, maxDepth int) (map[string][]byte, error) {
	start := time.Now()

	c.mu.Lock()
	c.found = make(map[string][]byte)
	c.urls = make(map[string]*url.URL)
	c.stats = Stats{}
	c.mu.Unlock()

	collector := colly.NewCollector(
		colly.Async(true),
		colly.AllowURLRevisit(),
	)
	if c.userAgent != "" {
		collector.UserAgent = c.userAgent
	}

	err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: c.workers,
		Delay:       c.delay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set limit rule: %w", err)
	}

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		depth, _ := r.Ctx.GetAny(ctxDepth).(int)
		logger.Infof("Visiting %s (Depth: %d)", r.URL.String(), depth)
	})

	collector.OnResponse(func(r *colly.Response) {
		rel, _ := r.Ctx.GetAny(ctxRel).(string)
		page, _ := r.Ctx.GetAny(ctxURL).(*url.URL)
		depth, _ := r.Ctx.GetAny(ctxDepth).(int)
		logger.Debugf("Got response from %s: status=%d, length=%d", r.Request.URL, r.StatusCode, len(r.Body))
		c.fetched(ctx, collector, rel, page, depth, r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		c.mu.Lock()
		c.stats.FetchErrors++
		c.mu.Unlock()
		if r != nil && r.Request != nil {
			logger.Warningf("Error on %s: %v", r.Request.URL, err)
			return
		}
		logger.Warningf("Fetch error: %v", err)
	})

	logger.Infof("Starting the crawl at %s (max depth %d, %d workers)", c.base, maxDepth, c.workers)

	c.mu.Lock()
	c.discover(ctx, collector, "/", c.rootURL(), maxDepth)
	c.mu.Unlock()

	collector.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Duration = time.Since(start)
	logger.Infof("Crawling completed: %d paths found, %d pages fetched", c.stats.PathsFound, c.stats.PagesFetched)

	result := make(map[string][]byte, len(c.found))
	for rel, body := range c.found {
		result[rel] = body
	}
	return result, nil
}

// Stats returns the statistics of the last crawl
func (c *Crawler) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// PageURL returns the absolute URL of a relative path: the URL it was
// discovered at during the last crawl, or the path joined to the base.
func (c *Crawler) PageURL(rel string) *url.URL {
	c.mu.Lock()
	u, ok := c.urls[rel]
	c.mu.Unlock()
	if ok {
		clone := *u
		return &clone
	}
	return c.joinBase(rel)
}

func (c *Crawler) rootURL() *url.URL {
	return c.joinBase("/")
}

func (c *Crawler) joinBase(rel string) *url.URL {
	u := *c.base
	u.Path = c.basePath + rel
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return &u
}

// discover records rel, found at target, and queues a fetch of target if
// depth allows. Must hold c.mu.
func (c *Crawler) discover(ctx context.Context, collector *colly.Collector, rel string, target *url.URL, depth int) {
	if _, ok := c.found[rel]; ok {
		return
	}
	c.found[rel] = nil
	c.urls[rel] = target
	c.stats.PathsFound++

	if depth <= 0 {
		logger.Debugf("Depth exhausted, recording %s without fetching", rel)
		return
	}
	if ctx.Err() != nil {
		logger.Debugf("Crawl cancelled, not fetching %s", rel)
		return
	}

	reqCtx := colly.NewContext()
	reqCtx.Put(ctxRel, rel)
	reqCtx.Put(ctxURL, target)
	reqCtx.Put(ctxDepth, depth)

	if err := collector.Request(http.MethodGet, target.String(), nil, reqCtx, nil); err != nil {
		logger.Warningf("Failed to queue %s: %v", target, err)
		c.stats.FetchErrors++
	}
}

// fetched handles a completed fetch of rel from page.
func (c *Crawler) fetched(ctx context.Context, collector *colly.Collector, rel string, page *url.URL, depth int, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(body) == 0 {
		logger.Warningf("No content for %s", rel)
		c.stats.FetchErrors++
		return
	}
	c.found[rel] = append([]byte(nil), body...)
	c.stats.PagesFetched++

	hrefs, err := c.extract(body)
	if err != nil {
		logger.Warningf("Failed to extract links from %s: %v", rel, err)
		return
	}

	if page == nil {
		page = c.joinBase(rel)
	}
	for _, href := range hrefs {
		link, err := page.Parse(href)
		if err != nil {
			logger.Debugf("Unparseable link %q on %s: %v", href, rel, err)
			c.stats.LinksSkipped++
			continue
		}
		if !InScope(link, c.base) {
			logger.Debugf("Out of scope: %s, skipping", link)
			c.stats.LinksSkipped++
			continue
		}
		c.discover(ctx, collector, relativePath(link, c.basePath), stripQuery(link), depth-1)
	}
}
