package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/workgrid/internal/app"
	"github.com/specialistvlad/workgrid/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// WORKGRID_LOG_LEVEL for --log-level.
const EnvPrefix = "WORKGRID"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// NewRootCommand builds the workgrid command tree writing to outW. The
// modules replace the core modules when given, which tests use to register
// their own tool kinds.
func NewRootCommand(outW io.Writer, modules ...registry.Module) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "workgrid",
		Short: "Workgrid - a declarative, requirement-driven pipeline builder.",
		Long: `Workgrid wires stations of tools into a pipeline graph, resolves which
tools every station must provide for the demanded outputs and builds them
from the leaves up.

PIPELINE_PATH is a single .hcl/.yaml file or a directory containing them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("healthcheck-port", 0, "Port for the HTTP health and metrics server. 0 is disabled.")
	flags.Int("workers", 1, "Number of stations built concurrently.")
	flags.String("progress", app.ProgressConsole, "Progress output. Options: 'console', 'log', 'none'.")
	flags.String("socketio-url", "", "Also emit progress to this socket.io server.")
	flags.String("socketio-event", "progress", "Event name used for socket.io progress messages.")
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("cli: failed to bind flags: %v", err))
	}

	root.AddCommand(
		newModeCommand(outW, v, app.ModeRun, "Build every station the demands require", modules),
		newModeCommand(outW, v, app.ModePlan, "Resolve which tools every station instantiates without building", modules),
		newModeCommand(outW, v, app.ModeGraph, "Validate the pipeline graph and print it", modules),
	)
	return root
}

func newModeCommand(outW io.Writer, v *viper.Viper, mode, short string, modules []registry.Module) *cobra.Command {
	return &cobra.Command{
		Use:   mode + " PIPELINE_PATH",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError(fmt.Errorf("%s expects exactly one PIPELINE_PATH argument, got %d", cmd.Name(), len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(v, mode, args[0])
			if err != nil {
				return usageError(err)
			}
			return app.NewApp(outW, cfg, modules...).Run(cmd.Context())
		},
	}
}

// configFrom assembles and validates the app configuration from the bound
// flags and environment.
func configFrom(v *viper.Viper, mode, path string) (*app.Config, error) {
	return app.NewConfig(app.Config{
		PipelinePath:    path,
		Mode:            mode,
		LogFormat:       v.GetString("log-format"),
		LogLevel:        v.GetString("log-level"),
		HealthcheckPort: v.GetInt("healthcheck-port"),
		Workers:         v.GetInt("workers"),
		Progress:        v.GetString("progress"),
		SocketIOURL:     v.GetString("socketio-url"),
		SocketIOEvent:   v.GetString("socketio-event"),
	})
}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
