package app

import (
	"context"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/progress"
)

// newReporter builds the progress sink selected by the configuration. The
// returned function releases it. A socket.io connection failure is logged
// and the run goes on without it, as progress is advisory.
func (a *App) newReporter(ctx context.Context) (progress.Reporter, func()) {
	logger := ctxlog.FromContext(ctx)

	var sinks []progress.Reporter
	switch a.config.Progress {
	case ProgressConsole:
		sinks = append(sinks, progress.NewConsole(a.outW))
	case ProgressLog:
		sinks = append(sinks, progress.Log{})
	}

	release := func() {}
	if a.config.SocketIOURL != "" {
		sio, err := progress.NewSocketIO(ctx, progress.SocketIOConfig{
			URL:   a.config.SocketIOURL,
			Event: a.config.SocketIOEvent,
		})
		if err != nil {
			logger.Warn("Socket.IO progress reporter disabled.", "url", a.config.SocketIOURL, "error", err)
		} else {
			sinks = append(sinks, sio)
			release = sio.Close
		}
	}
	return progress.Multi(sinks...), release
}
