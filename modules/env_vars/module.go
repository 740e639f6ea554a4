package env_vars

import (
	"context"
	"maps"
	"os"
	"strings"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/tool"
)

// Kind is the tool kind registered by this module.
const Kind = "env_vars"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Tool snapshots the process environment when built. A non-empty option
// keeps only the variables whose name starts with it.
type Tool struct {
	*tool.Base
	vars map[string]string
}

// New is the registry.Factory for env_vars tools.
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

	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		name, value, ok := strings.Cut(e, "=")
		if ok && strings.HasPrefix(name, t.Option()) {
			envMap[name] = value
		}
	}
	t.vars = envMap
	ctxlog.FromContext(ctx).Debug("Environment captured.", "tool", t.Key(), "count", len(envMap))
	return nil
}

// Product returns a copy of the captured variables.
func (t *Tool) Product() any {
	return maps.Clone(t.vars)
}

// Register registers the tool kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(Kind, New)
}
