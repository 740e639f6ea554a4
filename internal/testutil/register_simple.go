package testutil

import "github.com/specialistvlad/workgrid/internal/registry"

// SimpleModule is a test helper for registering a single tool kind without
// writing a dedicated module.
type SimpleModule struct {
	Kind    string
	Factory registry.Factory
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Kind != "" && m.Factory != nil {
		r.RegisterTool(m.Kind, m.Factory)
	}
}
