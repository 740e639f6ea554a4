// Package tool defines the capability contract that stations instantiate.
//
// A tool type is described once by an immutable Descriptor: its name, the
// upstream tool names it requires, whether its own option is forwarded to
// those requirements, and optional allow/deny lists for the option. Tool
// instances are created by a station during engagement and populated with the
// resources of the station's suppliers during build.
package tool

import (
	"context"
	"io"
	"slices"

	"github.com/specialistvlad/workgrid/internal/requirements"
)

// Config is the shared configuration handed to every tool constructor.
type Config struct {
	// Pipeline is the pipeline name, used to name output artifacts.
	Pipeline string
	// OutputDir is the directory tools write artifacts into.
	OutputDir string
	// Out receives human-facing output from tools such as print.
	Out io.Writer
}

// Descriptor is the static, per-type description of a tool. It must not be
// mutated once it has been placed in a Registry.
type Descriptor struct {
	Name string
	// Requires lists the upstream tool names this tool consumes.
	Requires []string
	// CarryOptions forwards the instance option to every requirement.
	CarryOptions bool
	// ValidOptions, when non-empty, is the allow-list of options.
	ValidOptions []string
	// InvalidOptions, when non-empty, is the deny-list of options.
	InvalidOptions []string
}

// ValidateOption checks an option against the allow and deny lists. The
// empty option is subject to the allow-list like any other value.
func (d *Descriptor) ValidateOption(option string) error {
	if len(d.ValidOptions) > 0 && !slices.Contains(d.ValidOptions, option) {
		return &InvalidOptionError{Tool: d.Name, Option: option, Reason: "unsupported"}
	}
	if len(d.InvalidOptions) > 0 && slices.Contains(d.InvalidOptions, option) {
		return &InvalidOptionError{Tool: d.Name, Option: option, Reason: "invalid"}
	}
	return nil
}

// Pool is a flat map of built tools keyed by requirements.Key.
type Pool map[string]Tool

// Find returns the tool serving name with option: the name:option instance
// if present, else the option-less name instance.
func (p Pool) Find(name, option string) (Tool, bool) {
	if t, ok := p[requirements.Key(name, option)]; ok {
		return t, true
	}
	if option == "" {
		return nil, false
	}
	t, ok := p[name]
	return t, ok
}

// Tool is an instantiated capability bound to one option.
type Tool interface {
	// Descriptor returns the static description of the tool type.
	Descriptor() *Descriptor
	// Option returns the validated option, "" when none.
	Option() string
	// Key returns the unique resource key of the instance.
	Key() string
	// Needs returns what this instance requires from upstream.
	Needs() requirements.Set
	// Build checks that every need is present in pool and keeps it.
	Build(ctx context.Context, pool Pool) error
	// Resources returns the pool handed to Build, nil before build.
	Resources() Pool
}

// Producer is implemented by tools that expose a product to downstream
// tools after build.
type Producer interface {
	Product() any
}

// Constructor creates a tool instance for the given option.
type Constructor func(cfg *Config, option string) (Tool, error)
