package station

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/progress"
	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/specialistvlad/workgrid/internal/tool"
)

// Station is a node of the pipeline graph.
type Station struct {
	name   string
	tools  *tool.Registry
	cfg    *tool.Config
	depth  int
	seeded bool

	managers  []*Station
	suppliers []*Station

	requirements requirements.Set
	// resources holds the instantiated tools, order their keys in
	// instantiation order.
	resources tool.Pool
	order     []string
	imported  tool.Pool
}

// New creates an unconnected station able to instantiate the tools of
// registry. A nil or empty registry makes a pass-through station.
func New(name string, registry *tool.Registry, cfg *tool.Config) *Station {
	if cfg == nil {
		cfg = &tool.Config{}
	}
	return &Station{
		name:         name,
		tools:        registry,
		cfg:          cfg,
		requirements: requirements.Set{},
		resources:    tool.Pool{},
		imported:     tool.Pool{},
	}
}

// NewSeed creates an external manager carrying fixed demands. Seeds sit
// outside the supplier graph and inject the requirements of the final
// output; engaging a seed leaves its demands untouched.
func NewSeed(name string, demands requirements.Set) *Station {
	s := New(name, nil, nil)
	s.seeded = true
	s.requirements = demands.Clone()
	return s
}

// Connect wires the station to its managers and suppliers. The slices are
// copied.
func (s *Station) Connect(managers, suppliers []*Station) {
	s.managers = append([]*Station(nil), managers...)
	s.suppliers = append([]*Station(nil), suppliers...)
}

func (s *Station) Name() string   { return s.name }
func (s *Station) String() string { return s.name }

// Depth is the longest supplier-edge distance from the traversal start, as
// last computed by the graph driver.
func (s *Station) Depth() int { return s.depth }

// RaiseDepth sets the depth to d if d is greater than the current depth and
// reports whether it changed. Depth never decreases.
func (s *Station) RaiseDepth(d int) bool {
	if d <= s.depth {
		return false
	}
	s.depth = d
	return true
}

// Registry returns the tools this station can instantiate.
func (s *Station) Registry() *tool.Registry { return s.tools }

// IsSeed reports whether the station was created with NewSeed.
func (s *Station) IsSeed() bool { return s.seeded }

// Managers returns a copy of the manager list.
func (s *Station) Managers() []*Station { return append([]*Station(nil), s.managers...) }

// Suppliers returns a copy of the supplier list.
func (s *Station) Suppliers() []*Station { return append([]*Station(nil), s.suppliers...) }

// HasManager reports whether m is listed among the managers.
func (s *Station) HasManager(m *Station) bool {
	for _, candidate := range s.managers {
		if candidate == m {
			return true
		}
	}
	return false
}

// Requirements returns a copy of the station's current requirement set.
func (s *Station) Requirements() requirements.Set { return s.requirements.Clone() }

// Tools returns the keys of the instantiated tools in instantiation order.
func (s *Station) Tools() []string { return append([]string(nil), s.order...) }

// Tool returns the instantiated tool stored under key.
func (s *Station) Tool(key string) (tool.Tool, bool) {
	t, ok := s.resources[key]
	return t, ok
}

// Resources returns the exported resource map: every instantiated tool keyed
// by name or name:option.
func (s *Station) Resources() tool.Pool {
	out := make(tool.Pool, len(s.resources))
	for k, v := range s.resources {
		out[k] = v
	}
	return out
}

// Imported returns the resources gathered from the suppliers by Build.
func (s *Station) Imported() tool.Pool {
	out := make(tool.Pool, len(s.imported))
	for k, v := range s.imported {
		out[k] = v
	}
	return out
}

// Engage resolves which tool variants the station must instantiate and what
// it needs from its suppliers in turn.
//
// Tools are matched in registry declaration order, and a tool demanded with
// several options is instantiated once per option in sorted order, so two
// engagements of the same graph produce identical instances and order.
// Engage is idempotent: every call starts from an empty instance map.
func (s *Station) Engage(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("station", s.name)
	if s.seeded {
		logger.Debug("Seed station keeps its demands.", "requirements", s.requirements.String())
		return nil
	}

	needs := s.managerNeeds()
	s.resources = tool.Pool{}
	s.order = nil

	if s.tools.Len() == 0 {
		s.requirements = needs
		logger.Debug("Pass-through station engaged.", "requirements", needs.String())
		return nil
	}

	var collected []requirements.Set
	for _, entry := range s.tools.Entries() {
		options, ok := needs[entry.Descriptor.Name]
		if !ok {
			continue
		}
		if len(options) == 0 {
			options = []string{""}
		}
		for _, option := range options {
			t, err := s.instantiate(entry, option)
			if err != nil {
				return err
			}
			collected = append(collected, t.Needs())
		}
	}

	s.requirements = requirements.Combine(collected...)
	s.stripUnsupportedOptions()

	logger.Debug("Station engaged.", "tools", s.order, "requirements", s.requirements.String())
	return nil
}

func (s *Station) managerNeeds() requirements.Set {
	sets := make([]requirements.Set, 0, len(s.managers))
	for _, m := range s.managers {
		sets = append(sets, m.requirements)
	}
	return requirements.Combine(sets...)
}

func (s *Station) instantiate(entry tool.Entry, option string) (tool.Tool, error) {
	key := requirements.Key(entry.Descriptor.Name, option)
	t, err := entry.New(s.cfg, option)
	if err != nil {
		return nil, fmt.Errorf("station %q: failed to instantiate tool %q: %w", s.name, key, err)
	}
	s.resources[key] = t
	s.order = append(s.order, key)
	return t, nil
}

// stripUnsupportedOptions drops the options of a requirement whenever a
// supplier registers that tool without option support: a tool that cannot
// tell options apart must not be asked for them.
func (s *Station) stripUnsupportedOptions() {
	for name, options := range s.requirements {
		if len(options) == 0 {
			continue
		}
		for _, supplier := range s.suppliers {
			entry, ok := supplier.tools.Lookup(name)
			if ok && !entry.Descriptor.CarryOptions {
				s.requirements[name] = nil
				break
			}
		}
	}
}

// ValidateSuppliers checks that every required tool name is registered by at
// least one supplier.
func (s *Station) ValidateSuppliers() error {
	offered := make(map[string]struct{})
	for _, supplier := range s.suppliers {
		for _, name := range supplier.tools.Names() {
			offered[name] = struct{}{}
		}
	}

	var missing []string
	for _, name := range s.requirements.Names() {
		if _, ok := offered[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingRequirementsError{
			Station:   s.name,
			Missing:   missing,
			Suppliers: names(s.suppliers),
		}
	}
	return nil
}

// Build imports the suppliers' exported resources and builds every
// instantiated tool against them, in instantiation order. A resource key
// exported by two different suppliers is rejected.
func (s *Station) Build(ctx context.Context, rep progress.Reporter) error {
	logger := ctxlog.FromContext(ctx).With("station", s.name)
	rep = progress.OrNop(rep)

	imported := make(tool.Pool)
	origin := make(map[string]*Station)
	for _, supplier := range s.suppliers {
		for _, key := range supplier.order {
			if prev, ok := origin[key]; ok && prev != supplier {
				return &DuplicateResourceError{
					Station:   s.name,
					Key:       key,
					Suppliers: []string{prev.name, supplier.name},
				}
			}
			origin[key] = supplier
			imported[key] = supplier.resources[key]
		}
	}
	s.imported = imported
	logger.Debug("Supplier resources imported.", "count", len(imported))

	for _, key := range s.order {
		rep.Report(ctx, fmt.Sprintf("Building %s.", key))
		if err := s.resources[key].Build(ctx, imported); err != nil {
			return fmt.Errorf("station %q: %w", s.name, err)
		}
	}
	logger.Debug("Station built.", "tools", len(s.order))
	return nil
}

// LoadAllTools instantiates every registered tool with option, bypassing
// engagement. When option is empty and a tool has an allow-list, the first
// allowed option is used for that tool. It is meant for exercising a single
// station in isolation.
func (s *Station) LoadAllTools(option string) error {
	for _, entry := range s.tools.Entries() {
		opt := option
		if opt == "" && len(entry.Descriptor.ValidOptions) > 0 {
			opt = entry.Descriptor.ValidOptions[0]
		}
		key := requirements.Key(entry.Descriptor.Name, opt)
		if _, exists := s.resources[key]; exists {
			continue
		}
		if _, err := s.instantiate(entry, opt); err != nil {
			return err
		}
	}
	return nil
}

// Describe renders the station's connections and tooling for graph dumps.
func (s *Station) Describe() string {
	list := func(items []string) string {
		if len(items) == 0 {
			return "-None-"
		}
		return "[" + strings.Join(items, " ") + "]"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "👉️ %s (depth %d):\n", s.name, s.depth)
	fmt.Fprintf(&sb, "   ⛓  Managers: %s\n", list(names(s.managers)))
	fmt.Fprintf(&sb, "   🕸  Suppliers: %s\n", list(names(s.suppliers)))
	fmt.Fprintf(&sb, "   🔧 Tooling: %s\n", list(s.tools.Names()))
	return sb.String()
}

func names(stations []*Station) []string {
	out := make([]string, len(stations))
	for i, st := range stations {
		out[i] = st.name
	}
	return out
}
