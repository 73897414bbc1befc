package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deploymenttheory/go-site-diff/internal/logger"
	"github.com/deploymenttheory/go-site-diff/internal/types"
	"github.com/klauspost/compress/gzip"
)

// Snapshot represents the JSON output structure
type Snapshot struct {
	BaseURL     string              `json:"base_url"`
	LastUpdated time.Time           `json:"last_updated"`
	Stats       types.SnapshotStats `json:"stats"`
	Pages       []types.Page        `json:"pages"`
}

// JSONStorage implements the Storage interface using a JSON file, gzip
// compressed when the file name ends in .gz
type JSONStorage struct {
	filePath  string
	data      Snapshot
	pathIndex map[string]int
	mutex     sync.RWMutex
}

var _ Storage = (*JSONStorage)(nil)

// New creates a new JSONStorage
func New(filePath, baseURL string) *JSONStorage {
	return &JSONStorage{
		filePath:  filePath,
		pathIndex: make(map[string]int),
		data: Snapshot{
			BaseURL:     baseURL,
			LastUpdated: time.Now(),
			Pages:       make([]types.Page, 0),
		},
	}
}

// Store records a crawled page
func (s *JSONStorage) Store(page types.Page) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if i, ok := s.pathIndex[page.Path]; ok {
		s.data.Pages[i] = page
	} else {
		s.pathIndex[page.Path] = len(s.data.Pages)
		s.data.Pages = append(s.data.Pages, page)
	}

	s.updateStats()
	return nil
}

func (s *JSONStorage) updateStats() {
	stats := types.SnapshotStats{LastUpdatedAt: time.Now()}
	for _, p := range s.data.Pages {
		stats.PagesStored++
		if p.Fetched {
			stats.PagesFetched++
		} else {
			stats.PagesAbsent++
		}
	}
	s.data.Stats = stats
	s.data.LastUpdated = stats.LastUpdatedAt
}

// Close sorts the pages and writes the snapshot
func (s *JSONStorage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sort.Slice(s.data.Pages, func(i, j int) bool {
		return s.data.Pages[i].Path < s.data.Pages[j].Path
	})
	for i, p := range s.data.Pages {
		s.pathIndex[p.Path] = i
	}
	s.data.LastUpdated = time.Now()

	logger.Infof("Closing storage with %d pages (%d fetched, %d absent)",
		s.data.Stats.PagesStored, s.data.Stats.PagesFetched, s.data.Stats.PagesAbsent)

	return s.saveToFile()
}

// Stats returns storage statistics
func (s *JSONStorage) Stats() types.SnapshotStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.data.Stats
}

// saveToFile writes the current data to the snapshot file
func (s *JSONStorage) saveToFile() error {
	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer file.Close()

	if !isGzip(s.filePath) {
		return encodeSnapshot(file, s.data)
	}

	zw := gzip.NewWriter(file)
	if err := encodeSnapshot(zw, s.data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func encodeSnapshot(w io.Writer, data Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Read loads a snapshot written by JSONStorage
func Read(filePath string) (*Snapshot, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if isGzip(filePath) {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip snapshot: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func isGzip(filePath string) bool {
	return strings.HasSuffix(strings.ToLower(filePath), ".gz")
}
