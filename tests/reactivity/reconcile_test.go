package reactivity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/sieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIndex_ColdStart verifies that a fresh session restores the persisted
// index and serves an unchanged vault entirely from it.
func TestIndex_ColdStart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// 1. Setup vault "offline"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.yaml"), []byte("types:\n  priority: number\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\npriority: high\n---\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.md"), []byte("---\npriority: 1\n---\n"), 0644))

	// 2. Session one: everything is a miss, findings are persisted
	svc1, err := sieve.New(dir)
	require.NoError(t, err)

	reports, err := svc1.CheckVault(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "bad.md", reports[0].ID)

	hits, misses := svc1.Checker().Cache().Stats()
	assert.Zero(t, hits)
	assert.EqualValues(t, 3, misses, "types.yaml and both notes are computed")

	// 3. Session two: a brand-new service over the same vault
	svc2, err := sieve.New(dir)
	require.NoError(t, err)

	reports2, err := svc2.CheckVault(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, reports, reports2, "Restored index must reproduce the verdict")

	hits, misses = svc2.Checker().Cache().Stats()
	assert.EqualValues(t, 3, hits, "Unchanged vault is served from the index")
	assert.Zero(t, misses)
}

// TestIndex_OfflineChange verifies that edits made between sessions invalidate
// exactly the touched records.
func TestIndex_OfflineChange(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.yaml"), []byte("types:\n  priority: number\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stable.md"), []byte("---\npriority: 1\n---\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fix-me.md"), []byte("---\npriority: high\n---\n"), 0644))

	// 1. Session one sees the problem
	svc1, err := sieve.New(dir)
	require.NoError(t, err)
	reports, err := svc1.CheckVault(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	// 2. Go "offline": fix the broken note, add a new one
	time.Sleep(50 * time.Millisecond) // Ensure mtime difference
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fix-me.md"), []byte("---\npriority: 2\n---\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.md"), []byte("---\npriority: 3\n---\n"), 0644))

	// 3. Session two recomputes only what changed
	svc2, err := sieve.New(dir)
	require.NoError(t, err)
	reports2, err := svc2.CheckVault(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, reports2, "The offline fix should clear the vault")

	hits, misses := svc2.Checker().Cache().Stats()
	assert.EqualValues(t, 2, hits, "types.yaml and stable.md are untouched")
	assert.EqualValues(t, 2, misses, "fix-me.md changed, new.md is unknown")
}

// TestIndex_OfflineDelete verifies that records deleted between sessions are
// pruned from the persisted index.
func TestIndex_OfflineDelete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.yaml"), []byte("types:\n  priority: number\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doomed.md"), []byte("---\npriority: high\n---\n"), 0644))

	svc1, err := sieve.New(dir)
	require.NoError(t, err)
	reports, err := svc1.CheckVault(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	indexPath := filepath.Join(dir, ".sieve", "index.json")
	indexBytes, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	require.Contains(t, string(indexBytes), "doomed.md")

	// Delete "offline"
	require.NoError(t, os.Remove(filepath.Join(dir, "doomed.md")))

	svc2, err := sieve.New(dir)
	require.NoError(t, err)
	reports2, err := svc2.CheckVault(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, reports2)

	indexBytes, err = os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.NotContains(t, string(indexBytes), "doomed.md", "Pruned entry must not be persisted")
}

// TestIndex_CorruptFileSelfHeals verifies that a mangled index degrades to a
// cold start instead of an error, and is rewritten valid.
func TestIndex_CorruptFileSelfHeals(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.yaml"), []byte("types:\n  priority: number\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("---\npriority: high\n---\n"), 0644))

	indexPath := filepath.Join(dir, ".sieve", "index.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(indexPath), 0755))
	require.NoError(t, os.WriteFile(indexPath, []byte("{ not json"), 0644))

	svc, err := sieve.New(dir)
	require.NoError(t, err)
	reports, err := svc.CheckVault(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	hits, _ := svc.Checker().Cache().Stats()
	assert.Zero(t, hits, "A corrupt index must not produce hits")

	indexBytes, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(indexBytes), "bad.md", "Index is rewritten valid")
}
