package types

import (
	"time"
)

// Page is one path discovered by a crawl
type Page struct {
	Path      string `json:"path"`
	URL       string `json:"url"`
	Fetched   bool   `json:"fetched"`
	SizeBytes int    `json:"size_bytes"`
	SHA3Hash  string `json:"sha3_hash,omitempty"`
}

// SnapshotStats holds snapshot statistics
type SnapshotStats struct {
	PagesStored   int       `json:"pages_stored"`
	PagesFetched  int       `json:"pages_fetched"`
	PagesAbsent   int       `json:"pages_absent"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
