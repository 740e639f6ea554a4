package dag

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/progress"
	"github.com/specialistvlad/workgrid/internal/station"
	"github.com/specialistvlad/workgrid/internal/tool"
	"golang.org/x/sync/errgroup"
)

// Plan validates the graph below start and engages every reachable station.
// It returns the stations in engagement order. No station is built.
//
// Stations are engaged shallowest first and, at equal depth, in the order
// they were discovered. Because depth is the longest distance from start,
// every manager reachable from start is engaged before its suppliers.
func Plan(ctx context.Context, start *station.Station, opts ...Option) ([]*station.Station, error) {
	return plan(ctx, start, newOptions(opts))
}

func plan(ctx context.Context, start *station.Station, o *options) ([]*station.Station, error) {
	logger := ctxlog.FromContext(ctx)

	if err := Validate(start); err != nil {
		return nil, err
	}
	o.reporter.Report(ctx, "✅ Workflow graph prepared.")
	logger.Debug("Graph validated.", "start", start.Name())

	queue := []*station.Station{start}
	visited := map[*station.Station]bool{start: true}
	var order []*station.Station

	for len(queue) > 0 {
		i := shallowest(queue)
		current := queue[i]
		queue = append(queue[:i], queue[i+1:]...)

		if err := current.Engage(ctx); err != nil {
			return nil, err
		}
		o.metrics.StationEngaged(current.Name(), len(current.Tools()))
		// A station without suppliers has no wiring to check; unmet needs
		// of its tools surface at build time as missing resources.
		if len(current.Suppliers()) > 0 {
			if err := current.ValidateSuppliers(); err != nil {
				return nil, err
			}
		}
		order = append(order, current)

		for _, supplier := range OrderByDepth(current.Suppliers()) {
			if !visited[supplier] {
				visited[supplier] = true
				queue = append(queue, supplier)
			}
		}
		o.reporter.Report(ctx, fmt.Sprintf("%s engaged and suppliers validated.", current.Name()))
	}

	o.reporter.Report(ctx, "✅ All Workstations initiated and validated.")
	logger.Debug("All stations engaged.", "count", len(order))
	return order, nil
}

// shallowest returns the index of the first station of minimum depth.
func shallowest(queue []*station.Station) int {
	best := 0
	for i, st := range queue[1:] {
		if st.Depth() < queue[best].Depth() {
			best = i + 1
		}
	}
	return best
}

// Run plans the graph below start and builds it in reverse engagement order.
// It returns the engagement order followed by the build order.
func Run(ctx context.Context, start *station.Station, opts ...Option) (visits []*station.Station, err error) {
	o := newOptions(opts)
	defer func() { o.metrics.RunFinished(err) }()

	order, err := plan(ctx, start, o)
	if err != nil {
		return nil, err
	}

	buildOrder := make([]*station.Station, len(order))
	for i, st := range order {
		buildOrder[len(order)-1-i] = st
	}

	if o.workers > 1 {
		err = buildConcurrently(ctx, buildOrder, o)
	} else {
		err = buildSequentially(ctx, buildOrder, o)
	}
	if err != nil {
		return nil, err
	}

	o.reporter.Report(ctx, "✅ All complete.")
	return append(order, buildOrder...), nil
}

func buildSequentially(ctx context.Context, buildOrder []*station.Station, o *options) error {
	if o.output != nil {
		ctx = tool.WithOutput(ctx, o.output)
	}
	for _, st := range buildOrder {
		if err := buildStation(ctx, st, o, o.reporter); err != nil {
			return err
		}
	}
	return nil
}

// buildConcurrently builds each station in its own goroutine once all of its
// suppliers are built. Progress messages and tool output are logged together
// per station and replayed in sequential build order, so observers see the
// same sequence a sequential build would produce, even when the reporter and
// the output share one writer.
func buildConcurrently(ctx context.Context, buildOrder []*station.Station, o *options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building stations concurrently.", "workers", o.workers, "stations", len(buildOrder))

	done := make(map[*station.Station]chan struct{}, len(buildOrder))
	for _, st := range buildOrder {
		done[st] = make(chan struct{})
	}
	logs := make([]*progress.Buffer, len(buildOrder))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	// Stations are started in build order, so every supplier of a waiting
	// station has already been started and the limit cannot deadlock.
	for i, st := range buildOrder {
		logs[i] = &progress.Buffer{}
		g.Go(func() error {
			for _, supplier := range st.Suppliers() {
				ch, ok := done[supplier]
				if !ok {
					continue
				}
				select {
				case <-ch:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			sctx := gctx
			if o.output != nil {
				sctx = tool.WithOutput(gctx, logs[i])
			}
			if err := buildStation(sctx, st, o, logs[i]); err != nil {
				return err
			}
			close(done[st])
			return nil
		})
	}
	err := g.Wait()

	for i := range buildOrder {
		if ferr := logs[i].Flush(ctx, o.reporter, o.output); ferr != nil && err == nil {
			err = fmt.Errorf("failed to write build output: %w", ferr)
		}
	}
	return err
}

func buildStation(ctx context.Context, st *station.Station, o *options, rep progress.Reporter) error {
	started := time.Now()
	if err := st.Build(ctx, rep); err != nil {
		return err
	}
	elapsed := time.Since(started)
	o.metrics.StationBuilt(st.Name(), elapsed)
	rep.Report(ctx, fmt.Sprintf("%s build completed.", st.Name()))
	ctxlog.FromContext(ctx).Debug("Station build completed.", "station", st.Name(), "duration", elapsed)
	return nil
}
