// Package blueprint assembles a loaded pipeline model and the registered tool
// kinds into a connected graph of stations ready for the dag driver.
package blueprint

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/workgrid/internal/config"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/specialistvlad/workgrid/internal/station"
	"github.com/specialistvlad/workgrid/internal/tool"
)

// SeedName names the external manager that carries the pipeline demands.
const SeedName = "demands"

// Blueprint is an assembled, connected station graph.
type Blueprint struct {
	// Start is the station the graph is driven from.
	Start *station.Station
	// Seed is the external manager of Start holding the pipeline demands.
	Seed *station.Station
	// Stations in declaration order, Seed excluded.
	Stations []*station.Station
	// Config is shared by every tool of the graph.
	Config *tool.Config

	byName map[string]*station.Station
}

// Station returns the station declared under name.
func (b *Blueprint) Station(name string) (*station.Station, bool) {
	st, ok := b.byName[name]
	return st, ok
}

// Assemble validates m against reg and builds the connected station graph.
// Tool output is written to out. Managers not declared explicitly are derived
// from the supplier lists, in declaration order; the seed is always the first
// manager of the start station.
func Assemble(ctx context.Context, m *config.Model, reg *registry.Registry, out io.Writer) (*Blueprint, error) {
	logger := ctxlog.FromContext(ctx)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := reg.ValidateModel(ctx, m); err != nil {
		return nil, err
	}

	b := &Blueprint{
		Config: &tool.Config{Pipeline: m.Name, OutputDir: m.OutputDir, Out: out},
		byName: make(map[string]*station.Station, len(m.Stations)),
	}

	for _, sc := range m.Stations {
		entries := make([]tool.Entry, 0, len(sc.Tools))
		for _, tc := range sc.Tools {
			factory, _ := reg.Lookup(tc.KindOf())
			desc := &tool.Descriptor{
				Name:           tc.Name,
				Requires:       tc.Requires,
				CarryOptions:   tc.CarryOptions,
				ValidOptions:   tc.ValidOptions,
				InvalidOptions: tc.InvalidOptions,
			}
			entries = append(entries, tool.Entry{Descriptor: desc, New: factory(desc)})
		}
		st := station.New(sc.Name, tool.NewRegistry(entries...), b.Config)
		b.Stations = append(b.Stations, st)
		b.byName[sc.Name] = st
	}

	b.Seed = station.NewSeed(SeedName, demands(m.Demands))
	b.Start = b.byName[m.Start]

	derived := make(map[string][]*station.Station)
	for _, sc := range m.Stations {
		for _, sup := range sc.Suppliers {
			derived[sup] = append(derived[sup], b.byName[sc.Name])
		}
	}

	for _, sc := range m.Stations {
		var managers []*station.Station
		if sc.Name == m.Start {
			managers = append(managers, b.Seed)
		}
		if sc.Managers != nil {
			for _, name := range sc.Managers {
				managers = append(managers, b.byName[name])
			}
		} else {
			managers = append(managers, derived[sc.Name]...)
		}

		suppliers := make([]*station.Station, 0, len(sc.Suppliers))
		for _, name := range sc.Suppliers {
			suppliers = append(suppliers, b.byName[name])
		}
		b.byName[sc.Name].Connect(managers, suppliers)
	}

	logger.Debug("Pipeline assembled.", "pipeline", m.Name, "stations", len(b.Stations), "start", m.Start)
	return b, nil
}

func demands(ds []*config.Demand) requirements.Set {
	sets := make([]requirements.Set, 0, len(ds))
	for _, d := range ds {
		sets = append(sets, requirements.Set{d.Tool: d.Options})
	}
	return requirements.Combine(sets...)
}

// String summarizes the blueprint for logs.
func (b *Blueprint) String() string {
	return fmt.Sprintf("pipeline %q (%d stations, start %s)", b.Config.Pipeline, len(b.Stations), b.Start)
}
