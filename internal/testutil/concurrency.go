package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/workgrid/internal/tool"
)

// Recorder hands out tool constructors whose instances record when they were
// built. Tests use it to assert build order and, with a sleep, overlap.
type Recorder struct {
	mu      sync.Mutex
	built   []string
	records map[string]*ExecutionRecord
	sleep   time.Duration
}

// NewRecorder creates a recorder whose tools sleep for the given duration
// while building.
func NewRecorder(sleep time.Duration) *Recorder {
	return &Recorder{records: make(map[string]*ExecutionRecord), sleep: sleep}
}

// Constructor returns a constructor for desc whose instances report to r.
// Instances are recorded under prefix + "/" + key, so stations sharing tool
// names stay distinguishable. An empty prefix records the bare key.
func (r *Recorder) Constructor(prefix string, desc *tool.Descriptor) tool.Constructor {
	return func(cfg *tool.Config, option string) (tool.Tool, error) {
		base, err := tool.NewBase(desc, cfg, option)
		if err != nil {
			return nil, err
		}
		label := base.Key()
		if prefix != "" {
			label = prefix + "/" + label
		}
		return &recordingTool{Base: base, recorder: r, label: label}, nil
	}
}

// Module registers kind as a tool kind whose instances report to r, for
// driving whole pipelines through the app.
func (r *Recorder) Module(kind string) *SimpleModule {
	return &SimpleModule{Kind: kind, Factory: func(desc *tool.Descriptor) tool.Constructor {
		return r.Constructor("", desc)
	}}
}

// Entry is a shorthand for a registry entry backed by r.
func (r *Recorder) Entry(prefix string, desc *tool.Descriptor) tool.Entry {
	return tool.Entry{Descriptor: desc, New: r.Constructor(prefix, desc)}
}

// Built returns the labels of built tools in completion order.
func (r *Recorder) Built() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.built...)
}

// Record returns the execution record of a built tool.
func (r *Recorder) Record(label string) (*ExecutionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[label]
	return rec, ok
}

type recordingTool struct {
	*tool.Base
	recorder *Recorder
	label    string
}

// Product exposes the label so downstream tools can see who built them.
func (t *recordingTool) Product() any { return t.label }

func (t *recordingTool) Build(ctx context.Context, pool tool.Pool) error {
	if err := t.Base.Build(ctx, pool); err != nil {
		return err
	}
	start := time.Now()
	if t.recorder.sleep > 0 {
		time.Sleep(t.recorder.sleep)
	}
	end := time.Now()

	t.recorder.mu.Lock()
	defer t.recorder.mu.Unlock()
	t.recorder.built = append(t.recorder.built, t.label)
	t.recorder.records[t.label] = &ExecutionRecord{Start: start, End: end}
	return nil
}
