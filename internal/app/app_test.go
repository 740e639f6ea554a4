package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/testutil"
	"github.com/specialistvlad/workgrid/modules/noop"
	"github.com/specialistvlad/workgrid/modules/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportPipeline = `
pipeline "demo" {
  start = "report"
}

demand "summary" {}

station "report" {
  suppliers = ["inputs"]

  tool "summary" {
    kind     = "print"
    requires = ["settings"]
  }
}

station "inputs" {
  tool "settings" {
    kind = "noop"
  }
}
`

func newTestApp(t *testing.T, cfg Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	if len(modules) == 0 {
		modules = []registry.Module{&noop.Module{}, &print.Module{}}
	}
	out := &testutil.SafeBuffer{}
	return NewApp(out, validated, modules...), out
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{PipelinePath: "p.hcl", Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, ModeRun, cfg.Mode)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProgressConsole, cfg.Progress)

	cfg, err = NewConfig(Config{PipelinePath: "p.hcl", Workers: 1, LogLevel: "DEBUG", Mode: "Graph"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ModeGraph, cfg.Mode)

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing path", Config{Workers: 1}, "PipelinePath"},
		{"bad mode", Config{PipelinePath: "p", Workers: 1, Mode: "deploy"}, "invalid mode"},
		{"bad format", Config{PipelinePath: "p", Workers: 1, LogFormat: "xml"}, "invalid log-format"},
		{"bad level", Config{PipelinePath: "p", Workers: 1, LogLevel: "trace"}, "invalid log-level"},
		{"bad progress", Config{PipelinePath: "p", Workers: 1, Progress: "bar"}, "invalid progress"},
		{"no workers", Config{PipelinePath: "p"}, "invalid workers"},
		{"bad port", Config{PipelinePath: "p", Workers: 1, HealthcheckPort: 70000}, "invalid healthcheck-port"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewApp_RegistersCoreModulesByDefault(t *testing.T) {
	cfg, err := NewConfig(Config{PipelinePath: "p.hcl", Workers: 1})
	require.NoError(t, err)

	a := NewApp(&bytes.Buffer{}, cfg)
	assert.Equal(t, []string{"csv_writer", "env_vars", "noop", "print"}, a.Registry().Kinds())
}

func TestApp_Run_BuildsHCLPipeline(t *testing.T) {
	path := testutil.WritePipeline(t, reportPipeline)
	a, out := newTestApp(t, Config{PipelinePath: path})

	require.NoError(t, a.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "📄 summary:")
	assert.Contains(t, output, "   settings")
	assert.Contains(t, output, "Building settings.")
	assert.Contains(t, output, "✅ All complete.")
	assert.Less(t, strings.Index(output, "Building settings."), strings.Index(output, "Building summary."))

	count, err := promtest.GatherAndCount(a.Gatherer(), "workgrid_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApp_Run_BuildsYAMLPipeline(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"pipeline.yaml": `
pipeline:
  name: demo
  start: report
demands:
  - tool: summary
stations:
  - name: report
    suppliers: [inputs]
    tools:
      - name: summary
        kind: print
        requires: [settings]
  - name: inputs
    tools:
      - name: settings
        kind: noop
`})
	a, out := newTestApp(t, Config{PipelinePath: dir, Progress: ProgressNone, Workers: 4})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "📄 summary:")
	assert.NotContains(t, out.String(), "✅ All complete.")
}

func TestApp_Run_PlanMode(t *testing.T) {
	path := testutil.WritePipeline(t, reportPipeline)
	a, out := newTestApp(t, Config{PipelinePath: path, Mode: ModePlan, Progress: ProgressNone})

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "report (depth 0): summary\n")
	assert.Contains(t, out.String(), "inputs (depth 1): settings\n")
	assert.NotContains(t, out.String(), "📄 summary:", "plan mode must not build")
}

func TestApp_Run_GraphMode(t *testing.T) {
	path := testutil.WritePipeline(t, reportPipeline)
	a, out := newTestApp(t, Config{PipelinePath: path, Mode: ModeGraph})

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "👉️ report (depth 0):")
	assert.Contains(t, out.String(), "Managers: [demands]")
	assert.Contains(t, out.String(), "👉️ inputs (depth 1):")
}

func TestApp_Run_UnknownKind(t *testing.T) {
	path := testutil.WritePipeline(t, strings.Replace(reportPipeline, `kind = "noop"`, `kind = "teleport"`, 1))
	a, _ := newTestApp(t, Config{PipelinePath: path})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to assemble pipeline")
	assert.Contains(t, err.Error(), "unknown kind 'teleport'")
}

func TestApp_Run_MissingRequirementFails(t *testing.T) {
	path := testutil.WritePipeline(t, strings.Replace(reportPipeline, `["settings"]`, `["settings", "foo"]`, 1))
	a, _ := newTestApp(t, Config{PipelinePath: path, Progress: ProgressNone})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline run failed")
	assert.Contains(t, err.Error(), "foo")
}

func TestApp_Run_SocketIOFailureIsNotFatal(t *testing.T) {
	path := testutil.WritePipeline(t, reportPipeline)
	a, out := newTestApp(t, Config{PipelinePath: path, SocketIOURL: "not-a-url"})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Socket.IO progress reporter disabled.")
	assert.Contains(t, out.String(), "✅ All complete.")
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	a, _ := newTestApp(t, Config{PipelinePath: "unused.hcl"})
	a.metrics.RunFinished(nil)

	srv := httptest.NewServer(a.newMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `workgrid_runs_total{outcome="success"} 1`)
}
