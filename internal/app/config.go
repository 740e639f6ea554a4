package app

import (
	"errors"
	"fmt"
	"strings"
)

// Modes select what Run does with the assembled pipeline.
const (
	ModeRun   = "run"
	ModePlan  = "plan"
	ModeGraph = "graph"
)

// Progress sinks selectable with Config.Progress.
const (
	ProgressConsole = "console"
	ProgressLog     = "log"
	ProgressNone    = "none"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // file or directory of .hcl/.yaml files
	Mode         string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int

	Progress      string
	SocketIOURL   string
	SocketIOEvent string
}

// NewConfig validates cfg and fills in defaults for empty optional fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}

	cfg.Mode = defaultString(strings.ToLower(cfg.Mode), ModeRun)
	switch cfg.Mode {
	case ModeRun, ModePlan, ModeGraph:
	default:
		return nil, fmt.Errorf("invalid mode '%s': must be 'run', 'plan' or 'graph'", cfg.Mode)
	}

	cfg.LogFormat = defaultString(strings.ToLower(cfg.LogFormat), "text")
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = defaultString(strings.ToLower(cfg.LogLevel), "info")
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid log-level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.Progress = defaultString(strings.ToLower(cfg.Progress), ProgressConsole)
	switch cfg.Progress {
	case ProgressConsole, ProgressLog, ProgressNone:
	default:
		return nil, fmt.Errorf("invalid progress '%s': must be 'console', 'log' or 'none'", cfg.Progress)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("invalid workers %d: must be at least 1", cfg.Workers)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
