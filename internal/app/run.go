package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/workgrid/internal/blueprint"
	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/dag"
	"github.com/specialistvlad/workgrid/internal/station"
)

// Run loads the pipeline and runs, plans or describes it according to the
// configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	model, err := a.loader.Load(ctx, a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}
	a.logger.Debug("Pipeline loaded and translated into unified model.", "stations", len(model.Stations))

	bp, err := blueprint.Assemble(ctx, model, a.registry, a.outW)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	a.logger.Info("Pipeline assembled.", "pipeline", bp.String())

	switch a.config.Mode {
	case ModeGraph:
		if err := dag.Validate(bp.Start); err != nil {
			return err
		}
		return dag.DescribeGraph(a.outW, bp.Start)
	case ModePlan:
		return a.plan(ctx, bp)
	default:
		return a.run(ctx, bp)
	}
}

func (a *App) run(ctx context.Context, bp *blueprint.Blueprint) error {
	reporter, release := a.newReporter(ctx)
	defer release()

	a.logger.Info("🚀 Starting pipeline run...", "workers", a.config.Workers)
	visits, err := dag.Run(ctx, bp.Start,
		dag.WithReporter(reporter),
		dag.WithMetrics(a.metrics),
		dag.WithWorkers(a.config.Workers),
		dag.WithOutput(a.outW),
	)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	a.logger.Info("🏁 Pipeline run finished.", "visits", stationNames(visits))
	return nil
}

func (a *App) plan(ctx context.Context, bp *blueprint.Blueprint) error {
	reporter, release := a.newReporter(ctx)
	defer release()

	order, err := dag.Plan(ctx, bp.Start, dag.WithReporter(reporter), dag.WithMetrics(a.metrics))
	if err != nil {
		return fmt.Errorf("pipeline plan failed: %w", err)
	}
	for _, st := range order {
		tools := "-None-"
		if keys := st.Tools(); len(keys) > 0 {
			tools = strings.Join(keys, " ")
		}
		if _, err := fmt.Fprintf(a.outW, "%s (depth %d): %s\n", st.Name(), st.Depth(), tools); err != nil {
			return err
		}
	}
	return nil
}

func stationNames(stations []*station.Station) []string {
	out := make([]string, len(stations))
	for i, st := range stations {
		out[i] = st.Name()
	}
	return out
}
