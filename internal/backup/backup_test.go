package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/aicost/internal/catalog"
)

func seededStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background()))
	return store
}

func TestExportRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)
	path := filepath.Join(t.TempDir(), "catalog.tar.gz")

	meta, err := NewManager(src).Export(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Services)
	assert.Greater(t, meta.Models, 0)
	assert.NotEmpty(t, meta.Checksums["services.json"])

	dst, err := catalog.Open(t.TempDir())
	require.NoError(t, err)
	defer dst.Close()

	restored, err := NewManager(dst).Restore(ctx, path, false)
	require.NoError(t, err)
	assert.Equal(t, meta.Services, restored.Services)

	services, err := dst.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 3)

	svc, err := dst.GetService(ctx, "openai")
	require.NoError(t, err)
	assert.Len(t, svc.Models, 2)
	assert.Len(t, svc.Plans, 3)
}

func TestRestoreReplacesUnlessMerge(t *testing.T) {
	ctx := context.Background()
	src, err := catalog.Open(t.TempDir())
	require.NoError(t, err)
	defer src.Close()
	require.NoError(t, src.PutService(ctx, &catalog.Service{ID: "only", Name: "Only", Provider: "P"}))

	path := filepath.Join(t.TempDir(), "one.tar.gz")
	_, err = NewManager(src).Export(ctx, path)
	require.NoError(t, err)

	dst := seededStore(t)

	// Plain restore replaces the seeded catalog wholesale.
	_, err = NewManager(dst).Restore(ctx, path, false)
	require.NoError(t, err)
	services, err := dst.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "only", services[0].ID)

	// Merge keeps what is already there.
	require.NoError(t, dst.Seed(ctx))
	_, err = NewManager(dst).Restore(ctx, path, true)
	require.NoError(t, err)
	services, err = dst.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 4)
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)
	path := filepath.Join(t.TempDir(), "catalog.tar.gz")
	_, err := NewManager(src).Export(ctx, path)
	require.NoError(t, err)

	meta, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", meta.Version)
	assert.Equal(t, 3, meta.Services)
	assert.False(t, meta.CreatedAt.IsZero())
}

func TestRestoreDetectsCorruption(t *testing.T) {
	ctx := context.Background()
	src := seededStore(t)
	path := filepath.Join(t.TempDir(), "catalog.tar.gz")
	_, err := NewManager(src).Export(ctx, path)
	require.NoError(t, err)

	// Flip bytes in the middle of the archive.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = NewManager(src).Restore(ctx, path, false)
	assert.Error(t, err)
}

func TestRestoreMissingFile(t *testing.T) {
	store := seededStore(t)
	_, err := NewManager(store).Restore(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), false)
	assert.Error(t, err)
}
