package selftest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/aicost/internal/catalog"
)

func TestRunHealthy(t *testing.T) {
	dir := t.TempDir()
	store, err := catalog.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background()))
	store.Close()

	report := Run(context.Background(), dir)

	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "ok", report.Components["data_dir"].Status)
	assert.Equal(t, "ok", report.Components["catalog"].Status)
	assert.Equal(t, "ok", report.Components["share_codec"].Status)
	assert.NotEmpty(t, report.Timestamp)
}

func TestRunEmptyCatalogDegraded(t *testing.T) {
	dir := t.TempDir()
	store, err := catalog.Open(dir)
	require.NoError(t, err)
	store.Close()

	report := Run(context.Background(), dir)

	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "degraded", report.Components["catalog"].Status)
	assert.Contains(t, report.Components["catalog"].Detail, "seed")
}

func TestRunMissingDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-yet")

	report := Run(context.Background(), dir)

	// A missing dir is fine, it gets created on first open.
	assert.Equal(t, "ok", report.Components["data_dir"].Status)
}

func TestCheckShareCodec(t *testing.T) {
	status := checkShareCodec(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Empty(t, status.Error)
}
