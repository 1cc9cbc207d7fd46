package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aziis98/trimlines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()
	assert.Equal(t, trimlines.DefaultConfig(), cfg.Trim)
	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.Verbose)
}

func TestFindExistingDBPath(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dbPath := filepath.Join(root, "a", DBName)
	require.NoError(t, os.WriteFile(dbPath, nil, 0o644))

	t.Run("found in parent", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.findExistingDBPathFrom(nested))
		assert.Equal(t, dbPath, cfg.DBPath)
	})

	t.Run("found in same directory", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.findExistingDBPathFrom(filepath.Join(root, "a")))
		assert.Equal(t, dbPath, cfg.DBPath)
	})

	t.Run("directory with cache name is ignored", func(t *testing.T) {
		other := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(other, DBName), 0o755))

		cfg := New()
		assert.Error(t, cfg.findExistingDBPathFrom(other))
		assert.Empty(t, cfg.DBPath)
	})
}

func TestFindOrCreateDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := New()
	require.NoError(t, cfg.FindOrCreateDBPath())

	// t.TempDir may sit behind a symlink, compare resolved paths
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(filepath.Dir(cfg.DBPath))
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, DBName, filepath.Base(cfg.DBPath))
}
