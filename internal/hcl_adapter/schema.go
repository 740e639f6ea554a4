package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a pipeline file may contain.
type fileRoot struct {
	Pipelines []*pipelineBlock `hcl:"pipeline,block"`
	Demands   []*demandBlock   `hcl:"demand,block"`
	Stations  []*stationBlock  `hcl:"station,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type pipelineBlock struct {
	Name      string `hcl:"name,label"`
	Start     string `hcl:"start"`
	OutputDir string `hcl:"output_dir,optional"`
}

// demandBlock names a tool the final output needs. Options may be a single
// string or a list of strings.
type demandBlock struct {
	Tool    string         `hcl:"tool,label"`
	Options hcl.Expression `hcl:"options,optional"`
}

type stationBlock struct {
	Name      string       `hcl:"name,label"`
	Suppliers []string     `hcl:"suppliers,optional"`
	Managers  *[]string    `hcl:"managers,optional"`
	Tools     []*toolBlock `hcl:"tool,block"`
}

type toolBlock struct {
	Name           string   `hcl:"name,label"`
	Kind           string   `hcl:"kind,optional"`
	Requires       []string `hcl:"requires,optional"`
	CarryOptions   bool     `hcl:"carry_options,optional"`
	ValidOptions   []string `hcl:"valid_options,optional"`
	InvalidOptions []string `hcl:"invalid_options,optional"`
}
