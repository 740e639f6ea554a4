package print

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/specialistvlad/workgrid/internal/tool"
)

// Kind is the tool kind registered by this module.
const Kind = "print"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Tool prints the resources it requires, or every imported resource when it
// requires nothing, to the build output.
type Tool struct {
	*tool.Base
}

// New is the registry.Factory for print tools.
func New(desc *tool.Descriptor) tool.Constructor {
	return func(cfg *tool.Config, option string) (tool.Tool, error) {
		base, err := tool.NewBase(desc, cfg, option)
		if err != nil {
			return nil, err
		}
		return &Tool{Base: base}, nil
	}
}

// Build implements tool.Tool.
func (t *Tool) Build(ctx context.Context, pool tool.Pool) error {
	if err := t.Base.Build(ctx, pool); err != nil {
		return err
	}
	w := tool.Output(ctx, t.Config().Out)

	keys := requirements.UniqueKeys(t.Needs())
	if len(keys) == 0 {
		for k := range pool {
			keys = append(keys, k)
		}
		slices.Sort(keys)
	}

	if _, err := fmt.Fprintf(w, "📄 %s:\n", t.Key()); err != nil {
		return err
	}
	for _, key := range keys {
		res, _ := pool.Find(requirements.SplitKey(key))
		if err := printResource(w, key, res); err != nil {
			return err
		}
	}
	return nil
}

func printResource(w io.Writer, key string, res tool.Tool) error {
	p, ok := res.(tool.Producer)
	if !ok {
		_, err := fmt.Fprintf(w, "   %s\n", key)
		return err
	}

	switch v := p.Product().(type) {
	case nil:
		_, err := fmt.Fprintf(w, "   %s = (null)\n", key)
		return err
	case map[string]string:
		if _, err := fmt.Fprintf(w, "   %s:\n", key); err != nil {
			return err
		}
		// Sort keys for consistent output
		names := make([]string, 0, len(v))
		for k := range v {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			if _, err := fmt.Fprintf(w, "      %s = %q\n", k, v[k]); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "   %s = %v\n", key, v)
		return err
	}
}

// Register registers the tool kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(Kind, New)
}
