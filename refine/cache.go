package refine

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const cacheFileName = "refine_cache.gob"

type cacheEntry struct {
	SourceHash  string
	Fingerprint string
	Result      *FileResult
	CreatedAt   time.Time
}

// Cache stores results on disk, keyed by filename. An entry is only
// returned for identical source under an identical engine fingerprint.
type Cache struct {
	Dir     string
	entries map[string]cacheEntry
	mutex   sync.Mutex
	maxAge  time.Duration
}

// NewCache opens or creates the cache in dir. Entries older than maxAge
// are ignored; zero disables expiry.
func NewCache(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	c := &Cache{
		Dir:     dir,
		entries: make(map[string]cacheEntry),
		maxAge:  maxAge,
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.Dir, cacheFileName)
}

func (c *Cache) load() error {
	file, err := os.Open(c.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Get returns the cached result for filename if it was computed from
// source under fingerprint.
func (c *Cache) Get(filename string, source []byte, fingerprint string) (*FileResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[filename]
	if !ok {
		return nil, false
	}
	if entry.SourceHash != hashBytes(source) || entry.Fingerprint != fingerprint ||
		(c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge) {
		delete(c.entries, filename)
		return nil, false
	}
	return entry.Result, true
}

// Set records res and writes the cache file.
func (c *Cache) Set(filename string, source []byte, fingerprint string, res *FileResult) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = cacheEntry{
		SourceHash:  hashBytes(source),
		Fingerprint: fingerprint,
		Result:      res,
		CreatedAt:   time.Now(),
	}
	return c.save()
}

// Len returns the number of entries held in memory.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
	return c.save()
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
