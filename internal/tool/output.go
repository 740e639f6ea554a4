package tool

import (
	"context"
	"io"
)

type outputKey struct{}

// WithOutput returns a context whose tools write human-facing output to w
// instead of Config.Out. The concurrent build pass uses it to capture each
// station's output separately.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// Output returns the writer set by WithOutput, or fallback when none is set.
// It returns io.Discard when both are nil.
func Output(ctx context.Context, fallback io.Writer) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}
	if fallback != nil {
		return fallback
	}
	return io.Discard
}
