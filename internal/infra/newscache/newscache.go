// Package newscache persists the aggregated news set between digest runs
// as a single JSON file. The whole set is replaced on every refresh; writes
// go through a temp file and rename so readers never see a torn file.
package newscache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"plannerx/internal/domain/entity"
	"plannerx/internal/observability/metrics"
)

// Cache is a file-backed store for the full fetched news set.
type Cache struct {
	path string
}

// New creates a cache backed by the given file path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Load returns the cached items if the file exists and is younger than ttl.
// Any I/O or decode failure is treated as a cache miss: the caller falls
// through to a live fetch, so nothing here returns an error.
func (c *Cache) Load(ttl time.Duration) ([]entity.NewsItem, bool) {
	items, ok := c.load(ttl)
	metrics.RecordNewsCacheLookup(ok)
	return items, ok
}

func (c *Cache) load(ttl time.Duration) ([]entity.NewsItem, bool) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= ttl {
		return nil, false
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		slog.Warn("news cache read failed, treating as miss",
			slog.String("path", c.path),
			slog.Any("error", err))
		return nil, false
	}

	var items []entity.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("news cache decode failed, treating as miss",
			slog.String("path", c.path),
			slog.Any("error", err))
		return nil, false
	}

	return items, true
}

// Save replaces the cache with the given items. The write lands in a temp
// file in the same directory first and is renamed into place, so a
// concurrent reader sees either the old or the new set, never a partial one.
func (c *Cache) Save(items []entity.NewsItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("Save: Marshal: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Save: MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("Save: CreateTemp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("Save: Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: Close: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: Rename: %w", err)
	}

	return nil
}
