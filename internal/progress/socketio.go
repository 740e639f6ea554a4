package progress

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIOConfig configures the socket.io reporter.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// SocketIO emits every progress message as a socket.io event so that a
// dashboard can follow a run live.
type SocketIO struct {
	client *socket.Socket
	event  string
	seq    atomic.Int64
}

// NewSocketIO connects to the socket.io server and waits until the
// connection is established, fails, or the timeout elapses.
func NewSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("reporter", "socketio", "url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("socket.io URL %q must include scheme and host", cfg.URL)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Event == "" {
		cfg.Event = "progress"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	connected := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Progress reporter connected.", "namespace", cfg.Namespace, "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("socket.io connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("socket.io connection failed: %w", e)
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	io.Connect()

	waitCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	select {
	case <-waitCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for socket.io connection to %s", baseURL)
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
	}

	return &SocketIO{client: io, event: cfg.Event}, nil
}

// Report implements Reporter.
func (s *SocketIO) Report(_ context.Context, msg string) {
	s.client.Emit(s.event, socketPayload(s.seq.Add(1), msg, time.Now()))
}

// Close disconnects from the server.
func (s *SocketIO) Close() {
	s.client.Disconnect()
}

func socketPayload(seq int64, msg string, at time.Time) map[string]any {
	return map[string]any{
		"seq":     seq,
		"message": msg,
		"time":    at.UTC().Format(time.RFC3339Nano),
	}
}
