package yaml_adapter

import (
	"fmt"
	"os"

	"github.com/specialistvlad/workgrid/internal/config"
	"gopkg.in/yaml.v3"
)

type document struct {
	Pipeline *pipeline `yaml:"pipeline"`
	Demands  []demand  `yaml:"demands"`
	Stations []station `yaml:"stations"`
}

type pipeline struct {
	Name      string `yaml:"name"`
	Start     string `yaml:"start"`
	OutputDir string `yaml:"output_dir"`
}

type demand struct {
	Tool    string     `yaml:"tool"`
	Options stringList `yaml:"options"`
}

type station struct {
	Name      string    `yaml:"name"`
	Suppliers []string  `yaml:"suppliers"`
	Managers  *[]string `yaml:"managers"`
	Tools     []toolDef `yaml:"tools"`
}

type toolDef struct {
	Name           string   `yaml:"name"`
	Kind           string   `yaml:"kind"`
	Requires       []string `yaml:"requires"`
	CarryOptions   bool     `yaml:"carry_options"`
	ValidOptions   []string `yaml:"valid_options"`
	InvalidOptions []string `yaml:"invalid_options"`
}

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = stringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

func (d *document) translate() *config.Model {
	m := &config.Model{}
	if d.Pipeline != nil {
		m.Name = d.Pipeline.Name
		m.Start = d.Pipeline.Start
		m.OutputDir = os.ExpandEnv(d.Pipeline.OutputDir)
	}
	for _, dm := range d.Demands {
		var options []string
		if len(dm.Options) > 0 {
			options = []string(dm.Options)
		}
		m.Demands = append(m.Demands, &config.Demand{Tool: dm.Tool, Options: options})
	}
	for _, s := range d.Stations {
		st := &config.Station{Name: s.Name, Suppliers: s.Suppliers}
		if s.Managers != nil {
			st.Managers = append([]string{}, (*s.Managers)...)
		}
		for _, t := range s.Tools {
			st.Tools = append(st.Tools, &config.Tool{
				Name:           t.Name,
				Kind:           t.Kind,
				Requires:       t.Requires,
				CarryOptions:   t.CarryOptions,
				ValidOptions:   t.ValidOptions,
				InvalidOptions: t.InvalidOptions,
			})
		}
		m.Stations = append(m.Stations, st)
	}
	return m
}
