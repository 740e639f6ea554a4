package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles materializes a map of relative paths to contents inside a fresh
// temporary directory and returns the directory. Intermediate directories are
// created as needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// WritePipeline writes a single HCL pipeline file and returns its path.
func WritePipeline(t *testing.T, hcl string) string {
	t.Helper()
	dir := WriteFiles(t, map[string]string{"pipeline.hcl": hcl})
	return filepath.Join(dir, "pipeline.hcl")
}
