package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/workgrid/internal/config"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
)

// translate converts the decoded blocks of one file into a partial model.
func translate(ctx context.Context, root *fileRoot, evalCtx *hcl.EvalContext) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	if len(root.Pipelines) > 1 {
		return nil, fmt.Errorf("only one pipeline block is allowed per file, found %d", len(root.Pipelines))
	}
	for _, p := range root.Pipelines {
		model.Name = p.Name
		model.Start = p.Start
		model.OutputDir = p.OutputDir
	}

	for _, d := range root.Demands {
		options, err := stringList(d.Options, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("demand '%s': invalid options: %w", d.Tool, err)
		}
		model.Demands = append(model.Demands, &config.Demand{Tool: d.Tool, Options: options})
	}

	for _, s := range root.Stations {
		logger.Debug("Translating HCL station to internal config model.", "station", s.Name, "tools", len(s.Tools))
		st := &config.Station{
			Name:      s.Name,
			Suppliers: s.Suppliers,
		}
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
		model.Stations = append(model.Stations, st)
	}
	return model, nil
}
