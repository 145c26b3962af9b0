package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/halebuild/takeoff-engine/internal/config"
	"github.com/halebuild/takeoff-engine/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSourceList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Sycamore_B_Slab_Base.xlsx",
		"Magnolia_A_Basement_Base.xlsx",
		"Magnolia_A_Basement_Base.XLSX",
		"~$Magnolia_A_Basement_Base.xlsx",
		"notes.txt",
		"legacy.xls",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0o755))

	source, err := storage.NewLocalSource(dir)
	require.NoError(t, err)

	names, err := source.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Magnolia_A_Basement_Base.XLSX",
		"Magnolia_A_Basement_Base.xlsx",
		"Sycamore_B_Slab_Base.xlsx",
	}, names)
}

func TestLocalSourceOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Magnolia_A_Basement_Base.xlsx"), []byte("content"), 0o644))

	source, err := storage.NewLocalSource(dir)
	require.NoError(t, err)

	rc, err := source.Open(context.Background(), "Magnolia_A_Basement_Base.xlsx")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = source.Open(context.Background(), "missing.xlsx")
	assert.Error(t, err)
}

func TestNewLocalSourceMissingDir(t *testing.T) {
	_, err := storage.NewLocalSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestNewSourceModeSelection(t *testing.T) {
	dir := t.TempDir()

	source, err := storage.NewSource(&config.StorageConfig{Mode: "local", LocalBasePath: dir}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalSource{}, source)

	_, err = storage.NewSource(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewSource(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
