package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/sieve/pkg/core"
)

const indexVersion = 1

// indexFile is the persisted shape of the result index.
type indexFile struct {
	Version int                        `json:"version"`
	Entries map[string]core.CacheEntry `json:"entries"` // Key is the record ID (vault-relative path)
}

// Index persists check results under the vault's system directory so repeated
// runs skip unchanged files. It implements core.IndexStore.
type Index struct {
	Path string // Path to .sieve/index.json
}

// NewIndex creates an index handle at {vaultPath}/{systemDir}/index.json.
func NewIndex(vaultPath, systemDir string) *Index {
	if systemDir == "" {
		systemDir = DefaultSystemDir
	}
	return &Index{Path: filepath.Join(vaultPath, systemDir, "index.json")}
}

// Load reads the index from disk. A missing index starts fresh; a corrupt or
// version-mismatched one degrades to empty so it self-heals on the next save.
func (ix *Index) Load() (map[string]core.CacheEntry, error) {
	data, err := os.ReadFile(ix.Path)
	if os.IsNotExist(err) {
		return nil, nil // Start fresh
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil
	}
	if file.Version != indexVersion {
		return nil, nil
	}
	return file.Entries, nil
}

// Save writes the entries atomically (temp file + rename), creating the
// system directory on first use.
func (ix *Index) Save(entries map[string]core.CacheEntry) error {
	data, err := json.MarshalIndent(indexFile{Version: indexVersion, Entries: entries}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(ix.Path), 0755); err != nil {
		return err
	}

	return writeFileAtomic(ix.Path, data, 0644)
}

// Clear removes the index file. A missing file is not an error.
func (ix *Index) Clear() error {
	err := os.Remove(ix.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ core.IndexStore = (*Index)(nil)
