// Package history keeps a small local mirror of completed analyses so the
// recent-calls view and the usage counts keep working when the database is
// unreachable. The mirror is intentionally lossy: per-user it holds only the
// most recent entries, with long text fields truncated.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	cacheFileName = "history_cache.json"

	// MaxRecordsPerUser bounds the local mirror.
	MaxRecordsPerUser = 10
)

// Record is the locally mirrored shape of one analysis. The long text fields
// are truncated before caching; everything else is kept whole.
type Record struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Date            time.Time `json:"date"`
	FileName        string    `json:"fileName,omitempty"`
	StorageKey      string    `json:"storageKey,omitempty"`
	Transcript      string    `json:"transcription"`
	Analysis        string    `json:"analysis"`
	Recommendations string    `json:"recommendations"`
	Sentiment       string    `json:"sentiment,omitempty"`
	Score           string    `json:"score,omitempty"`
	Topics          []string  `json:"topics,omitempty"`
	Duration        string    `json:"duration,omitempty"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
}

type cacheFile struct {
	Records map[string][]Record `json:"records"`
}

// Cache is a whole-file JSON cache of recent records keyed by user. All
// operations take the mutex and rewrite the full file; the data set is tiny
// by construction.
type Cache struct {
	mu   sync.Mutex
	path string
}

// NewCache creates the cache under dataDir. The directory is created lazily
// on first write.
func NewCache(dataDir string) *Cache {
	return &Cache{path: filepath.Join(dataDir, cacheFileName)}
}

// Add prepends the record for its user and trims the user's slice to the cap.
func (c *Cache) Add(rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	records := append([]Record{rec}, state.Records[rec.UserID]...)
	if len(records) > MaxRecordsPerUser {
		records = records[:MaxRecordsPerUser]
	}
	state.Records[rec.UserID] = records
	return c.store(state)
}

// Recent returns the user's cached records, newest first.
func (c *Cache) Recent(userID string) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load().Records[userID]
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records
}

// CountSince counts the user's cached records dated at or after since. The
// cache caps how many records it retains, so this undercounts heavy usage;
// callers treat it as a floor.
func (c *Cache) CountSince(userID string, since time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, rec := range c.load().Records[userID] {
		if !rec.Date.Before(since) {
			count++
		}
	}
	return count
}

// Clear drops all of the user's cached records.
func (c *Cache) Clear(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	if _, ok := state.Records[userID]; !ok {
		return nil
	}
	delete(state.Records, userID)
	return c.store(state)
}

// load reads the cache file. A missing or corrupt file yields an empty state
// rather than an error; the mirror is best effort by contract.
func (c *Cache) load() cacheFile {
	state := cacheFile{Records: map[string][]Record{}}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil || state.Records == nil {
		return cacheFile{Records: map[string][]Record{}}
	}
	return state
}

func (c *Cache) store(state cacheFile) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
