package storage

import (
	"encoding/hex"

	"github.com/deploymenttheory/go-site-diff/internal/types"
	"golang.org/x/crypto/sha3"
)

// HashContent returns the hex SHA3-256 digest of a page body
func HashContent(body []byte) string {
	sum := sha3.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// NewPage builds the record for a crawled path. A nil body marks a page that
// was discovered but not fetched.
func NewPage(path, url string, body []byte) types.Page {
	page := types.Page{
		Path: path,
		URL:  url,
	}
	if body != nil {
		page.Fetched = true
		page.SizeBytes = len(body)
		page.SHA3Hash = HashContent(body)
	}
	return page
}
