package config

// Model is the unified, format-agnostic representation of a pipeline.
type Model struct {
	// Name names the pipeline and prefixes its output artifacts.
	Name string
	// OutputDir is where tools write their artifacts.
	OutputDir string
	// Start is the station the graph is driven from.
	Start string
	// Demands are the requirements of the final output, injected into the
	// start station by an external manager.
	Demands []*Demand
	// Stations in declaration order.
	Stations []*Station
}

// Demand is one requirement of the final output.
type Demand struct {
	Tool    string
	Options []string
}

// Station is the format-agnostic representation of a `station` block.
type Station struct {
	Name      string
	Suppliers []string
	// Managers, when non-nil, lists the managers explicitly. Otherwise they
	// are derived from the supplier lists of the other stations.
	Managers []string
	Tools    []*Tool
}

// Tool is one entry of a station's ordered tool registry.
type Tool struct {
	Name string
	// Kind selects the Go implementation. It defaults to Name.
	Kind           string
	Requires       []string
	CarryOptions   bool
	ValidOptions   []string
	InvalidOptions []string
}

// Station returns the station declared under name.
func (m *Model) Station(name string) (*Station, bool) {
	for _, s := range m.Stations {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// KindOf returns the implementation kind of t.
func (t *Tool) KindOf() string {
	if t.Kind != "" {
		return t.Kind
	}
	return t.Name
}
