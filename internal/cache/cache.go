package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/vidseek/vidseek/internal/logging"
	"github.com/vidseek/vidseek/internal/models"
)

// Cache persists the record list as an indented JSON array. It is a frozen
// snapshot: nothing here detects that the underlying files changed. Refresh
// or Clear are the only ways to get a new view.
type Cache struct {
	Path string
	log  zerolog.Logger
}

// New creates a cache handle for the given artifact path.
func New(path string) *Cache {
	return &Cache{Path: path, log: logging.New("cache")}
}

// Exists checks if the cache artifact is present on disk.
func (c *Cache) Exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}

// Load reads the record list from disk. A missing artifact yields an empty
// list; a corrupt one is treated as empty so the caller rescans instead of
// failing.
func (c *Cache) Load() ([]models.VideoRecord, error) {
	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		c.log.Warn().Str("path", c.Path).Err(err).Msg("unreadable cache, treating as empty")
		return nil, nil
	}

	var records []models.VideoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		c.log.Warn().Str("path", c.Path).Err(err).Msg("corrupt cache, treating as empty")
		return nil, nil
	}

	return records, nil
}

// Save overwrites the cache artifact wholesale with the given records.
func (c *Cache) Save(records []models.VideoRecord) error {
	if records == nil {
		records = []models.VideoRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	c.log.Debug().Str("path", c.Path).Int("records", len(records)).Msg("cache saved")
	return nil
}

// Refresh discards the persisted snapshot, rebuilds it with the given scan
// function and saves the result.
func (c *Cache) Refresh(rescan func() ([]models.VideoRecord, error)) ([]models.VideoRecord, error) {
	records, err := rescan()
	if err != nil {
		return nil, fmt.Errorf("rescan failed: %w", err)
	}
	if err := c.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes the cache artifact. Clearing an absent cache is not an
// error.
func (c *Cache) Clear() error {
	err := os.Remove(c.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	return nil
}
