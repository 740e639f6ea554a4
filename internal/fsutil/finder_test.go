package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

func TestFindFilesByExtension(t *testing.T) {
	root := writeTree(t, "b.hcl", "a.yaml", "nested/c.hcl", "notes.txt")

	files, err := FindFilesByExtension(root, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}

func TestExpandPaths(t *testing.T) {
	root := writeTree(t, "a.hcl", "dir/b.hcl", "dir/skip.txt", "explicit.conf")

	files, err := ExpandPaths([]string{
		filepath.Join(root, "dir"),
		filepath.Join(root, "explicit.conf"),
		filepath.Join(root, "dir", "b.hcl"),
	}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "dir", "b.hcl"),
		filepath.Join(root, "explicit.conf"),
	}, files)

	_, err = ExpandPaths([]string{filepath.Join(root, "missing")}, ".hcl")
	assert.Error(t, err)
}
