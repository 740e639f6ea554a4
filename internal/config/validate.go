package config

import (
	"errors"
	"fmt"
	"strings"
)

// Merge folds other into m. Pipeline settings may be declared only once
// across all files, and station names must stay unique.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, f := range []struct {
		name string
		dst  *string
		src  string
	}{
		{"name", &m.Name, other.Name},
		{"output_dir", &m.OutputDir, other.OutputDir},
		{"start", &m.Start, other.Start},
	} {
		if f.src == "" {
			continue
		}
		if *f.dst != "" && *f.dst != f.src {
			return fmt.Errorf("pipeline %s declared twice: '%s' and '%s'", f.name, *f.dst, f.src)
		}
		*f.dst = f.src
	}

	for _, s := range other.Stations {
		if _, exists := m.Station(s.Name); exists {
			return fmt.Errorf("station '%s' declared more than once", s.Name)
		}
		m.Stations = append(m.Stations, s)
	}
	m.Demands = append(m.Demands, other.Demands...)
	return nil
}

// Validate checks the model for problems that can be detected without
// knowing the tool implementations. All problems are reported together.
func (m *Model) Validate() error {
	var errs []string
	add := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	if m.Name == "" {
		add("pipeline name is required")
	}
	if m.Start == "" {
		add("pipeline start station is required")
	} else if _, ok := m.Station(m.Start); !ok {
		add("start station '%s' is not declared", m.Start)
	}
	if len(m.Demands) == 0 {
		add("at least one demand is required")
	}

	demanded := make(map[string]bool)
	for _, d := range m.Demands {
		if d.Tool == "" {
			add("demand without a tool name")
			continue
		}
		if demanded[d.Tool] {
			add("tool '%s' demanded more than once", d.Tool)
		}
		demanded[d.Tool] = true
	}

	for _, s := range m.Stations {
		if s.Name == "" {
			add("station without a name")
			continue
		}
		// Self-references are left to the graph driver, which reports them as
		// cycles.
		for _, ref := range append(append([]string(nil), s.Suppliers...), s.Managers...) {
			if _, ok := m.Station(ref); !ok {
				add("station '%s' references undeclared station '%s'", s.Name, ref)
			}
		}
		seen := make(map[string]bool)
		for _, t := range s.Tools {
			if t.Name == "" {
				add("station '%s' has a tool without a name", s.Name)
				continue
			}
			if seen[t.Name] {
				add("station '%s' declares tool '%s' more than once", s.Name, t.Name)
			}
			seen[t.Name] = true
		}
	}

	if len(errs) > 0 {
		return errors.New("pipeline validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
