package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/workgrid/internal/app"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/specialistvlad/workgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Result captures everything a scenario may assert on.
type Result struct {
	Output string
	Err    error
}

// RunPipeline runs the pipeline at path in the given mode with the modules
// registered, and returns the captured output and the run error.
func RunPipeline(t *testing.T, path, mode string, workers int, modules ...registry.Module) Result {
	t.Helper()
	cfg, err := app.NewConfig(app.Config{
		PipelinePath: path,
		Mode:         mode,
		LogLevel:     "warn",
		Workers:      workers,
		Progress:     app.ProgressLog,
	})
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	runErr := app.NewApp(out, cfg, modules...).Run(context.Background())
	return Result{Output: out.String(), Err: runErr}
}
