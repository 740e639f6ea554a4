package tool

import (
	"context"

	"github.com/specialistvlad/workgrid/internal/ctxlog"
	"github.com/specialistvlad/workgrid/internal/requirements"
)

// Base implements the default Tool behaviour. Concrete tools embed it and
// call Base.Build before doing their own work.
type Base struct {
	desc   *Descriptor
	cfg    *Config
	option string
	pool   Pool
}

// NewBase validates the option and returns a bare tool instance.
func NewBase(desc *Descriptor, cfg *Config, option string) (*Base, error) {
	if err := desc.ValidateOption(option); err != nil {
		return nil, err
	}
	return &Base{desc: desc, cfg: cfg, option: option}, nil
}

// NewConstructor returns a Constructor producing bare Base tools.
func NewConstructor(desc *Descriptor) Constructor {
	return func(cfg *Config, option string) (Tool, error) {
		return NewBase(desc, cfg, option)
	}
}

func (b *Base) Descriptor() *Descriptor { return b.desc }
func (b *Base) Option() string          { return b.option }
func (b *Base) Key() string             { return requirements.Key(b.desc.Name, b.option) }
func (b *Base) Resources() Pool         { return b.pool }

// Config returns the shared configuration the tool was created with.
func (b *Base) Config() *Config { return b.cfg }

// Needs returns one entry per required tool name. The entry carries this
// instance's option when the descriptor forwards options, and is nil
// otherwise.
func (b *Base) Needs() requirements.Set {
	needs := make(requirements.Set, len(b.desc.Requires))
	for _, name := range b.desc.Requires {
		if b.desc.CarryOptions && b.option != "" {
			needs[name] = []string{b.option}
		} else {
			needs[name] = nil
		}
	}
	return needs
}

// Build verifies that every need is present in pool and stores the pool. A
// need for name:option is also met by an option-less name instance, which is
// what a supplier that does not carry options exports.
func (b *Base) Build(ctx context.Context, pool Pool) error {
	for _, key := range requirements.UniqueKeys(b.Needs()) {
		if _, ok := pool.Find(requirements.SplitKey(key)); !ok {
			return &MissingResourceError{Tool: b.Key(), Key: key}
		}
	}
	ctxlog.FromContext(ctx).Debug("Tool resources checked.", "tool", b.Key(), "resource_count", len(pool))
	b.pool = pool
	return nil
}
