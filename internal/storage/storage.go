package storage

import (
	"github.com/deploymenttheory/go-site-diff/internal/types"
)

// Storage defines the interface for storing crawl snapshots
type Storage interface {
	// Store records a crawled page, replacing any earlier record for its path
	Store(page types.Page) error

	// Close finalizes the storage
	Close() error

	// Stats returns storage statistics
	Stats() types.SnapshotStats
}
