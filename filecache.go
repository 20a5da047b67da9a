package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jikan "github.com/Sethispr/jikanGo"
)

// fileCacheEntry is a single cached payload with its expiry.
type fileCacheEntry struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// FileCache is a persistent JSON-backed response cache. It satisfies
// jikan.Cache so it can be plugged into the Jikan client, and survives
// restarts via Save.
type FileCache struct {
	entries  map[string]fileCacheEntry
	mu       sync.RWMutex
	filePath string
	dirty    bool
}

var _ jikan.Cache = (*FileCache)(nil)

// NewFileCache creates a cache backed by filePath and loads existing data.
func NewFileCache(ctx context.Context, filePath string) *FileCache {
	cache := &FileCache{
		entries:  make(map[string]fileCacheEntry),
		filePath: filePath,
	}

	if err := cache.load(); err != nil && !os.IsNotExist(err) {
		LogWarn(ctx, "Failed to load cache %s: %v (starting fresh)", filePath, err)
	}

	return cache
}

// Get retrieves a cached value into dst. Expired entries are a cache miss.
func (c *FileCache) Get(_ context.Context, key string, dst interface{}) error {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(entry.ExpiresAt) {
		return jikan.CacheMissError{}
	}
	return json.Unmarshal(entry.Data, dst)
}

// Set stores a value under key for ttl.
func (c *FileCache) Set(_ context.Context, key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = fileCacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}
	c.dirty = true
	c.mu.Unlock()
	return nil
}

// Delete removes a cached entry.
func (c *FileCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.dirty = true
	c.mu.Unlock()
	return nil
}

// Size returns the number of cached entries.
func (c *FileCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save persists the cache to disk if there are unsaved changes.
func (c *FileCache) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	cacheDir := filepath.Dir(c.filePath)
	// #nosec G301 - Cache directory for non-sensitive data
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	// #nosec G306 - Cache file is non-sensitive
	if err := os.WriteFile(c.filePath, data, 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	c.dirty = false
	LogDebug(ctx, "[CACHE] Saved %d entries to %s", len(c.entries), c.filePath)
	return nil
}

// load reads the cache from disk.
func (c *FileCache) load() error {
	// #nosec G304 - File path comes from controlled cache directory
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		return fmt.Errorf("unmarshal cache: %w", err)
	}

	return nil
}
