// Package progress defines the advisory sink the graph driver notifies while
// it validates, engages and builds stations. Reporters never influence
// control flow: they cannot fail a run.
package progress

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
)

// Reporter receives free-text progress messages.
type Reporter interface {
	Report(ctx context.Context, msg string)
}

// Func adapts a plain function to the Reporter interface.
type Func func(ctx context.Context, msg string)

// Report calls f.
func (f Func) Report(ctx context.Context, msg string) { f(ctx, msg) }

// Nop discards every message.
var Nop Reporter = Func(func(context.Context, string) {})

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop
	}
	return r
}

// Log writes messages to the context logger at Info level.
type Log struct{}

// Report implements Reporter.
func (Log) Report(ctx context.Context, msg string) {
	ctxlog.FromContext(ctx).Info(msg)
}

type multi []Reporter

// Multi fans every message out to all non-nil reporters in order.
func Multi(reporters ...Reporter) Reporter {
	var m multi
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (m multi) Report(ctx context.Context, msg string) {
	for _, r := range m {
		r.Report(ctx, msg)
	}
}

// Buffer records progress messages and raw output writes as one ordered
// log until it is flushed. The concurrent build pass gives every station its
// own Buffer, used both as reporter and as tool output, and flushes them in
// sequential build order so a sink shared by both sees the sequential
// interleaving.
type Buffer struct {
	mu     sync.Mutex
	events []event
}

// event is either a progress message or a chunk of output.
type event struct {
	msg    string
	output []byte
}

// Report implements Reporter.
func (b *Buffer) Report(_ context.Context, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{msg: msg})
}

// Write implements io.Writer. p is copied.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{output: bytes.Clone(p)})
	return len(p), nil
}

// Messages returns a copy of the buffered progress messages.
func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.events {
		if e.output == nil {
			out = append(out, e.msg)
		}
	}
	return out
}

// Flush replays the log in arrival order, messages to r and output to w,
// and empties the buffer. Output is dropped when w is nil. The first write
// error stops the replay.
func (b *Buffer) Flush(ctx context.Context, r Reporter, w io.Writer) error {
	b.mu.Lock()
	events := b.events
	b.events = nil
	b.mu.Unlock()

	r = OrNop(r)
	for _, e := range events {
		if e.output == nil {
			r.Report(ctx, e.msg)
			continue
		}
		if w == nil {
			continue
		}
		if _, err := w.Write(e.output); err != nil {
			return err
		}
	}
	return nil
}
