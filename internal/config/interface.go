package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/fsutil"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the given files and directories and translates them into a
	// single merged model. The model is not validated.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// ByExtension dispatches every pipeline file to the loader registered for its
// extension and merges the results. Directories are expanded into every file
// with a registered extension.
type ByExtension map[string]Loader

// Load implements Loader. Files are loaded one at a time in path order.
func (b ByExtension) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	extensions := make([]string, 0, len(b))
	for ext := range b {
		extensions = append(extensions, ext)
	}
	slices.Sort(extensions)

	files, err := fsutil.ExpandPaths(paths, extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no pipeline files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered pipeline files.", "count", len(files))

	model := &Model{}
	for _, file := range files {
		loader, ok := b[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, fmt.Errorf("unsupported pipeline file %s: expected one of %s", file, strings.Join(extensions, ", "))
		}
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", file, err)
		}
	}
	return model, nil
}
