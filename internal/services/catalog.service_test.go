package services

import (
	"os"
	"path/filepath"
	"steamsize/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSizeCatalogSkipsBrokenCandidates(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	malformed := writeCatalogFile(t, dir, "malformed.json", `{"570": {"name": "Dota 2", `)
	valid := writeCatalogFile(t, dir, "valid.json", `{"570": {"name": "Dota 2", "size_gb": 60.5}}`)
	later := writeCatalogFile(t, dir, "later.json", `{"730": {"name": "CS2", "size_gb": 85}}`)

	catalog := LoadSizeCatalog([]string{missing, malformed, valid, later})

	assert.Equal(t, valid, catalog.Source())
	assert.Equal(t, 1, catalog.Len())
	entry, ok := catalog.Lookup("570")
	require.True(t, ok)
	assert.Equal(t, models.SizeEntry{ID: "570", Name: "Dota 2", SizeGB: 60.5}, entry)

	_, ok = catalog.Lookup("730")
	assert.False(t, ok)
}

func TestLoadSizeCatalogFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	notObject := writeCatalogFile(t, dir, "null.json", `null`)
	array := writeCatalogFile(t, dir, "array.json", `[1, 2, 3]`)

	catalog := LoadSizeCatalog([]string{filepath.Join(dir, "nope.json"), notObject, array})

	assert.Equal(t, 0, catalog.Len())
	assert.Empty(t, catalog.Source())
	_, ok := catalog.Lookup("570")
	assert.False(t, ok)
}

func TestLoadSizeCatalogDuplicateKeysLastWins(t *testing.T) {
	path := writeCatalogFile(t, t.TempDir(), "dupes.json", `{
		"10": {"name": "First", "size_gb": 1},
		"10": {"name": "Second", "size_gb": 2}
	}`)

	catalog := LoadSizeCatalog([]string{path})

	entry, ok := catalog.Lookup("10")
	require.True(t, ok)
	assert.Equal(t, "Second", entry.Name)
	assert.Equal(t, 2.0, entry.SizeGB)
}

func TestLoadSizeCatalogDropsNegativeSizes(t *testing.T) {
	path := writeCatalogFile(t, t.TempDir(), "negative.json", `{
		"1": {"name": "Broken", "size_gb": -3},
		"2": {"name": "Fine", "size_gb": 0}
	}`)

	catalog := LoadSizeCatalog([]string{path})

	assert.Equal(t, 1, catalog.Len())
	_, ok := catalog.Lookup("1")
	assert.False(t, ok)
	_, ok = catalog.Lookup("2")
	assert.True(t, ok)
}

func TestNewSizeCatalogCopiesInput(t *testing.T) {
	entries := map[string]models.SizeEntry{"1": {Name: "One", SizeGB: 1}}
	catalog := NewSizeCatalog(entries)

	entries["2"] = models.SizeEntry{Name: "Two", SizeGB: 2}

	assert.Equal(t, 1, catalog.Len())
}

func TestBundledCatalogParses(t *testing.T) {
	catalog := LoadSizeCatalog([]string{"../../static/game_sizes_database.json"})

	assert.Greater(t, catalog.Len(), 0)
}
