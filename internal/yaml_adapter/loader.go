// Package yaml_adapter loads pipeline definitions written in YAML and
// translates them into the format-agnostic config.Model.
//
// The document mirrors the HCL blocks:
//
//	pipeline:
//	  name: demo
//	  start: output
//	  output_dir: ${HOME}/out
//	demands:
//	  - tool: csv_writer
//	    options: [car, bus]
//	stations:
//	  - name: output
//	    suppliers: [writers]
//	  - name: writers
//	    tools:
//	      - name: csv_writer
//	        carry_options: true
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/workgrid/internal/config"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes every .yaml or .yml file among paths (directories are walked)
// and merges them into one model. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.ExpandPaths(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, file := range files {
		part, err := decodeFile(file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part.translate()); err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
	}

	logger.Debug("YAML loading complete.", "files", len(files), "stations", len(model.Stations), "demands", len(model.Demands))
	return model, nil
}

func decodeFile(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return &doc, nil
}
