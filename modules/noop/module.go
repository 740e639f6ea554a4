// Package noop provides the "noop" tool kind: a tool that only checks that
// its requirements were supplied. It is useful for wiring pass-through
// stages and for trying out pipeline shapes.
package noop

import "github.com/specialistvlad/workgrid/internal/registry"

// Kind is the tool kind registered by this module.
const Kind = "noop"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the tool kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(Kind, registry.Base)
}
