package tool

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBase_ValidatesOption(t *testing.T) {
	desc := &Descriptor{Name: "highway_distances", ValidOptions: []string{"car"}}

	b, err := NewBase(desc, nil, "car")
	require.NoError(t, err)
	assert.Equal(t, "car", b.Option())
	assert.Equal(t, "highway_distances:car", b.Key())

	_, err = NewBase(desc, nil, "bus")
	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "highway_distances", optErr.Tool)
	assert.Equal(t, "bus", optErr.Option)
	assert.Equal(t, "unsupported", optErr.Reason)

	// The empty option is checked against the allow-list too.
	_, err = NewBase(desc, nil, "")
	require.ErrorAs(t, err, &optErr)
}

func TestNewBase_DenyList(t *testing.T) {
	desc := &Descriptor{Name: "link_counts", InvalidOptions: []string{"walk"}}

	_, err := NewBase(desc, nil, "bus")
	require.NoError(t, err)

	_, err = NewBase(desc, nil, "walk")
	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "invalid", optErr.Reason)
	assert.Contains(t, optErr.Error(), `"walk"`)
}

func TestNeeds(t *testing.T) {
	t.Run("no requirements", func(t *testing.T) {
		b, err := NewBase(&Descriptor{Name: "raw"}, nil, "car")
		require.NoError(t, err)
		assert.Empty(t, b.Needs())
	})

	t.Run("options carried", func(t *testing.T) {
		desc := &Descriptor{Name: "csv", Requires: []string{"raw", "network"}, CarryOptions: true}
		b, err := NewBase(desc, nil, "car")
		require.NoError(t, err)
		assert.True(t, requirements.Equal(
			requirements.Set{"raw": {"car"}, "network": {"car"}}, b.Needs()))
	})

	t.Run("options not carried", func(t *testing.T) {
		desc := &Descriptor{Name: "csv", Requires: []string{"raw"}}
		b, err := NewBase(desc, nil, "car")
		require.NoError(t, err)
		assert.True(t, requirements.Equal(requirements.Set{"raw": nil}, b.Needs()))
	})

	t.Run("carry without option", func(t *testing.T) {
		desc := &Descriptor{Name: "csv", Requires: []string{"raw"}, CarryOptions: true}
		b, err := NewBase(desc, nil, "")
		require.NoError(t, err)
		assert.True(t, requirements.Equal(requirements.Set{"raw": nil}, b.Needs()))
	})
}

func TestBuild_PresenceCheck(t *testing.T) {
	ctx := context.Background()
	desc := &Descriptor{Name: "csv", Requires: []string{"raw"}, CarryOptions: true}
	b, err := NewBase(desc, nil, "car")
	require.NoError(t, err)

	raw, err := NewBase(&Descriptor{Name: "raw"}, nil, "")
	require.NoError(t, err)

	err = b.Build(ctx, Pool{"raw:bus": raw})
	var missing *MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "csv:car", missing.Tool)
	assert.Equal(t, "raw:car", missing.Key)
	assert.Nil(t, b.Resources())

	pool := Pool{"raw:car": raw}
	require.NoError(t, b.Build(ctx, pool))
	assert.Equal(t, pool, b.Resources())

	// An option-less instance serves every option.
	require.NoError(t, b.Build(ctx, Pool{"raw": raw}))
}

func TestPool_Find(t *testing.T) {
	bare, err := NewBase(&Descriptor{Name: "raw"}, nil, "")
	require.NoError(t, err)
	car, err := NewBase(&Descriptor{Name: "raw"}, nil, "car")
	require.NoError(t, err)

	pool := Pool{"raw": bare, "raw:car": car}

	got, ok := pool.Find("raw", "car")
	require.True(t, ok)
	assert.Same(t, car, got)

	got, ok = pool.Find("raw", "bus")
	require.True(t, ok)
	assert.Same(t, bare, got)

	_, ok = Pool{"raw:car": car}.Find("raw", "")
	assert.False(t, ok)
	_, ok = pool.Find("links", "car")
	assert.False(t, ok)
}

func TestRegistry_PreservesOrder(t *testing.T) {
	r := NewRegistry(
		Entry{Descriptor: &Descriptor{Name: "mode_share"}},
		Entry{Descriptor: &Descriptor{Name: "agent_logs"}},
		Entry{Descriptor: &Descriptor{Name: "agent_plans"}},
	)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"mode_share", "agent_logs", "agent_plans"}, r.Names())

	e, ok := r.Lookup("agent_logs")
	require.True(t, ok)
	require.NotNil(t, e.New, "missing constructors default to the base tool")

	tl, err := e.New(&Config{}, "")
	require.NoError(t, err)
	assert.Equal(t, "agent_logs", tl.Key())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(
			Entry{Descriptor: &Descriptor{Name: "x"}},
			Entry{Descriptor: &Descriptor{Name: "x"}},
		)
	})
	assert.Panics(t, func() { NewRegistry(Entry{}) })
}

func TestRegistry_NilIsEmpty(t *testing.T) {
	var r *Registry
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Names())
	assert.Nil(t, r.Entries())
	_, ok := r.Lookup("x")
	assert.False(t, ok)
}

func TestOutput(t *testing.T) {
	var fallback, override strings.Builder
	ctx := context.Background()

	assert.Equal(t, io.Discard, Output(ctx, nil))
	assert.Same(t, &fallback, Output(ctx, &fallback))

	ctx = WithOutput(ctx, &override)
	assert.Same(t, &override, Output(ctx, &fallback))
}
