package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"steamsize/internal/models"
)

// DefaultCatalogPaths are tried in order when no paths are configured
var DefaultCatalogPaths = []string{
	"static/game_sizes_database.json",
	"../static/game_sizes_database.json",
	"../../static/game_sizes_database.json",
	"./static/game_sizes_database.json",
}

// SizeCatalog maps Steam app ids to their installed size.
// It is immutable once built and safe for concurrent readers.
type SizeCatalog struct {
	entries map[string]models.SizeEntry
	source  string
}

// NewSizeCatalog builds a catalog from entries keyed by app id.
// The map is copied.
func NewSizeCatalog(entries map[string]models.SizeEntry) *SizeCatalog {
	c := &SizeCatalog{entries: make(map[string]models.SizeEntry, len(entries))}
	for id, e := range entries {
		e.ID = id
		c.entries[id] = e
	}
	return c
}

// LoadSizeCatalog returns the catalog from the first path that exists and
// parses. Broken candidates are logged and skipped; if none work the catalog
// is empty.
func LoadSizeCatalog(paths []string) *SizeCatalog {
	for _, path := range paths {
		log.Printf("[CATALOG] Attempting to load game sizes from: %s", path)

		entries, err := readCatalogFile(path)
		if err != nil {
			log.Printf("[CATALOG] Skipping %s: %v", path, err)
			continue
		}

		c := NewSizeCatalog(entries)
		c.source = path
		log.Printf("[CATALOG] Loaded %d entries from %s", c.Len(), path)
		return c
	}

	log.Printf("[CATALOG] Warning: no usable size database found, sizes will not be matched")
	return NewSizeCatalog(nil)
}

// readCatalogFile decodes {"<appid>": {"name": ..., "size_gb": ...}}.
// encoding/json assigns map keys in document order, so a duplicated app id
// keeps its last entry.
func readCatalogFile(path string) (map[string]models.SizeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]models.SizeEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("JSON parse error: top-level value is not an object")
	}

	for id, e := range raw {
		if e.SizeGB < 0 {
			log.Printf("[CATALOG] Warning: dropping %s (%s): negative size %.2f", id, e.Name, e.SizeGB)
			delete(raw, id)
		}
	}

	return raw, nil
}

// Lookup returns the entry for an app id
func (c *SizeCatalog) Lookup(id string) (models.SizeEntry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of entries
func (c *SizeCatalog) Len() int {
	return len(c.entries)
}

// Source returns the path the catalog was loaded from, empty if none
func (c *SizeCatalog) Source() string {
	return c.source
}
