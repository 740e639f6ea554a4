// Package metrics exposes Prometheus collectors for pipeline runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector groups the run metrics. A nil *Collector is valid and records
// nothing, so the graph driver can call it unconditionally.
type Collector struct {
	stationsEngaged  *prometheus.CounterVec
	toolsInstantiate *prometheus.CounterVec
	buildDuration    *prometheus.HistogramVec
	runs             *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		stationsEngaged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workgrid_station_engaged_total",
				Help: "Number of times a station was engaged.",
			},
			[]string{"station"},
		),
		toolsInstantiate: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workgrid_tools_instantiated_total",
				Help: "Number of tool instances created during engagement, by station.",
			},
			[]string{"station"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workgrid_station_build_duration_seconds",
				Help:    "Time taken to build a station.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"station"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workgrid_runs_total",
				Help: "Number of pipeline runs by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(c.stationsEngaged, c.toolsInstantiate, c.buildDuration, c.runs)
	return c
}

// StationEngaged records an engagement and the tools it instantiated.
func (c *Collector) StationEngaged(station string, tools int) {
	if c == nil {
		return
	}
	c.stationsEngaged.WithLabelValues(station).Inc()
	c.toolsInstantiate.WithLabelValues(station).Add(float64(tools))
}

// StationBuilt records how long a station build took.
func (c *Collector) StationBuilt(station string, d time.Duration) {
	if c == nil {
		return
	}
	c.buildDuration.WithLabelValues(station).Observe(d.Seconds())
}

// RunFinished counts a finished run as "success" or "failure".
func (c *Collector) RunFinished(err error) {
	if c == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.runs.WithLabelValues(outcome).Inc()
}
