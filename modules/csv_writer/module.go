// Package csv_writer provides the "csv_writer" tool kind. It flattens the
// products of the resources it requires into rows of (resource, field, value)
// and writes them to <output_dir>/<pipeline>_<tool>[_<option>].csv.
package csv_writer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/specialistvlad/workgrid/internal/chunkwriter"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/specialistvlad/workgrid/internal/tool"
)

// Kind is the tool kind registered by this module.
const Kind = "csv_writer"

// Header is the column header of every file written.
var Header = []string{"resource", "field", "value"}

// Module implements the registry.Module interface for this package.
type Module struct {
	// ChunkSize bounds the rows held in memory; zero uses the writer default.
	ChunkSize int
}

// Tool writes one CSV file per instance.
type Tool struct {
	*tool.Base
	chunkSize int
	path      string
}

// Build implements tool.Tool.
func (t *Tool) Build(ctx context.Context, pool tool.Pool) error {
	if err := t.Base.Build(ctx, pool); err != nil {
		return err
	}
	t.path = t.outputPath()
	w := chunkwriter.New(t.path, t.chunkSize, Header)

	for _, key := range requirements.UniqueKeys(t.Needs()) {
		res, _ := pool.Find(requirements.SplitKey(key))
		if err := w.Add(rows(key, res)...); err != nil {
			return err
		}
	}
	if err := w.Finish(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("CSV written.", "tool", t.Key(), "path", t.path, "rows", w.Rows())
	return nil
}

// Product returns the path of the written file.
func (t *Tool) Product() any { return t.path }

func (t *Tool) outputPath() string {
	cfg := t.Config()
	dir, pipeline := ".", "pipeline"
	if cfg != nil {
		if cfg.OutputDir != "" {
			dir = cfg.OutputDir
		}
		if cfg.Pipeline != "" {
			pipeline = cfg.Pipeline
		}
	}
	name := fmt.Sprintf("%s_%s", pipeline, t.Descriptor().Name)
	if t.Option() != "" {
		name += "_" + t.Option()
	}
	return filepath.Join(dir, name+".csv")
}

// rows flattens a resource product into (resource, field, value) rows.
func rows(key string, res tool.Tool) [][]string {
	p, ok := res.(tool.Producer)
	if !ok {
		return [][]string{{key, "", ""}}
	}
	switch v := p.Product().(type) {
	case nil:
		return [][]string{{key, "", ""}}
	case map[string]string:
		fields := make([]string, 0, len(v))
		for f := range v {
			fields = append(fields, f)
		}
		slices.Sort(fields)
		out := make([][]string, 0, len(fields))
		for _, f := range fields {
			out = append(out, []string{key, f, v[f]})
		}
		return out
	case []string:
		out := make([][]string, 0, len(v))
		for i, s := range v {
			out = append(out, []string{key, strconv.Itoa(i), s})
		}
		return out
	default:
		return [][]string{{key, "", fmt.Sprint(v)}}
	}
}

// Register registers the tool kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	chunkSize := m.ChunkSize
	r.RegisterTool(Kind, func(desc *tool.Descriptor) tool.Constructor {
		return func(cfg *tool.Config, option string) (tool.Tool, error) {
			base, err := tool.NewBase(desc, cfg, option)
			if err != nil {
				return nil, err
			}
			return &Tool{Base: base, chunkSize: chunkSize}, nil
		}
	})
}
