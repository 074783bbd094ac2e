package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.yaml", "nested/c.hcl", "notes.txt")

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.hcl"), filepath.Join(root, "nested", "c.hcl")}, files)

	files, err = FindFilesByExtension(root, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.yaml")}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "dir/b.hcl", "dir/skip.txt")

	t.Run("files and directories are merged without duplicates", func(t *testing.T) {
		files, err := Collect([]string{filepath.Join(root, "a.hcl"), root, filepath.Join(root, "dir", "skip.txt")}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.hcl"), filepath.Join(root, "dir", "b.hcl")}, files)
	})

	t.Run("extensions match regardless of case", func(t *testing.T) {
		upper := t.TempDir()
		writeFiles(t, upper, "staff.YAML", "menu.Yml", "notes.txt")

		files, err := Collect([]string{upper, filepath.Join(upper, "staff.YAML")}, ".yaml", ".yml")

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(upper, "menu.Yml"), filepath.Join(upper, "staff.YAML")}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Collect([]string{filepath.Join(root, "missing.hcl")}, ".hcl")
		assert.ErrorContains(t, err, "error accessing path")
	})
}
