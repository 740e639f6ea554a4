package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/workgrid/internal/tool"
)

// Factory returns the constructor for one tool declared in a pipeline. The
// descriptor carries the name, requirements and option rules from the
// pipeline file.
type Factory func(desc *tool.Descriptor) tool.Constructor

// Module is the interface that all core modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the tool factories of a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates a Registry and registers every module in order.
func New(modules ...Module) *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterTool registers the factory for a tool kind. It panics when the
// kind is already registered.
func (r *Registry) RegisterTool(kind string, f Factory) {
	if f == nil {
		panic(fmt.Sprintf("tool kind '%s' registered without a factory", kind))
	}
	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("tool kind '%s' already registered", kind))
	}
	slog.Debug("Registering tool kind.", "kind", kind)
	r.factories[kind] = f
}

// Lookup returns the factory registered for kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Base is the factory for tools that only need the default presence check.
func Base(desc *tool.Descriptor) tool.Constructor {
	return tool.NewConstructor(desc)
}
