package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.StationEngaged("writers", 2)
	c.StationEngaged("writers", 1)
	c.StationBuilt("writers", 150*time.Millisecond)
	c.RunFinished(nil)
	c.RunFinished(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.stationsEngaged.WithLabelValues("writers")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.toolsInstantiate.WithLabelValues("writers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.buildDuration))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.StationEngaged("x", 1)
		c.StationBuilt("x", time.Second)
		c.RunFinished(nil)
	})
}
