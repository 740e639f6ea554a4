package station

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/specialistvlad/workgrid/internal/progress"
	"github.com/specialistvlad/workgrid/internal/requirements"
	"github.com/specialistvlad/workgrid/internal/testutil"
	"github.com/specialistvlad/workgrid/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(descs ...*tool.Descriptor) *tool.Registry {
	entries := make([]tool.Entry, len(descs))
	for i, d := range descs {
		entries[i] = tool.Entry{Descriptor: d}
	}
	return tool.NewRegistry(entries...)
}

// chain wires seed -> root -> mid -> leaf with mid registering csv and leaf
// registering raw.
func chain(demands requirements.Set, csvCarries, rawCarries bool) (seed, root, mid, leaf *Station) {
	seed = NewSeed("seed", demands)
	root = New("root", nil, nil)
	mid = New("mid", registry(
		&tool.Descriptor{Name: "csv", Requires: []string{"raw"}, CarryOptions: csvCarries},
	), nil)
	leaf = New("leaf", registry(
		&tool.Descriptor{Name: "raw", CarryOptions: rawCarries},
	), nil)

	root.Connect([]*Station{seed}, []*Station{mid})
	mid.Connect([]*Station{root}, []*Station{leaf})
	leaf.Connect([]*Station{mid}, nil)
	return seed, root, mid, leaf
}

func TestEngage_PassThroughStation(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, _, _ := chain(requirements.Set{"csv": {"car"}}, true, false)

	require.NoError(t, root.Engage(ctx))

	assert.True(t, requirements.Equal(requirements.Set{"csv": {"car"}}, root.Requirements()))
	assert.Empty(t, root.Tools())
}

func TestEngage_InstantiatesOptionVariants(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, mid, leaf := chain(requirements.Set{"csv": {"car"}}, true, false)

	require.NoError(t, root.Engage(ctx))
	require.NoError(t, mid.Engage(ctx))

	assert.Equal(t, []string{"csv:car"}, mid.Tools())
	// raw:[car] is stripped because leaf's raw does not carry options.
	assert.True(t, requirements.Equal(requirements.Set{"raw": nil}, mid.Requirements()),
		"got %s", mid.Requirements())

	require.NoError(t, leaf.Engage(ctx))
	assert.Equal(t, []string{"raw"}, leaf.Tools())
	assert.Empty(t, leaf.Requirements())
}

func TestEngage_KeepsOptionsWhenSupplierCarriesThem(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, mid, leaf := chain(requirements.Set{"csv": {"car", "bus"}}, true, true)

	require.NoError(t, root.Engage(ctx))
	require.NoError(t, mid.Engage(ctx))
	require.NoError(t, leaf.Engage(ctx))

	assert.Equal(t, []string{"csv:bus", "csv:car"}, mid.Tools())
	assert.True(t, requirements.Equal(requirements.Set{"raw": {"bus", "car"}}, mid.Requirements()))
	assert.Equal(t, []string{"raw:bus", "raw:car"}, leaf.Tools())
}

func TestEngage_OptionLessDemand(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, mid, _ := chain(requirements.Set{"csv": nil}, true, true)

	require.NoError(t, root.Engage(ctx))
	require.NoError(t, mid.Engage(ctx))

	assert.Equal(t, []string{"csv"}, mid.Tools())
	assert.True(t, requirements.Equal(requirements.Set{"raw": nil}, mid.Requirements()))
}

func TestEngage_FollowsRegistryOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	seed := NewSeed("seed", requirements.Set{"c": nil, "a": nil, "b": nil})
	s := New("handlers", registry(
		&tool.Descriptor{Name: "b"},
		&tool.Descriptor{Name: "c"},
		&tool.Descriptor{Name: "a"},
		&tool.Descriptor{Name: "unused"},
	), nil)
	s.Connect([]*Station{seed}, nil)

	require.NoError(t, s.Engage(ctx))
	assert.Equal(t, []string{"b", "c", "a"}, s.Tools())
}

func TestEngage_Idempotent(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, mid, _ := chain(requirements.Set{"csv": {"car", "bus"}}, true, false)
	require.NoError(t, root.Engage(ctx))

	require.NoError(t, mid.Engage(ctx))
	firstReqs := mid.Requirements()
	firstTools := mid.Tools()

	require.NoError(t, mid.Engage(ctx))
	assert.True(t, requirements.Equal(firstReqs, mid.Requirements()))
	assert.Equal(t, firstTools, mid.Tools())
	assert.Len(t, mid.Resources(), len(firstTools))
}

func TestEngage_InvalidOption(t *testing.T) {
	ctx, _ := testutil.Context(t)
	seed := NewSeed("seed", requirements.Set{"highway_distances": {"bus"}})
	s := New("plans", registry(
		&tool.Descriptor{Name: "highway_distances", ValidOptions: []string{"car"}},
	), nil)
	s.Connect([]*Station{seed}, nil)

	err := s.Engage(ctx)
	var optErr *tool.InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "bus", optErr.Option)
	assert.Contains(t, err.Error(), `station "plans"`)
}

func TestEngage_SeedKeepsDemands(t *testing.T) {
	ctx, _ := testutil.Context(t)
	seed := NewSeed("seed", requirements.Set{"csv": {"car"}})
	require.NoError(t, seed.Engage(ctx))
	assert.True(t, seed.IsSeed())
	assert.True(t, requirements.Equal(requirements.Set{"csv": {"car"}}, seed.Requirements()))
}

func TestValidateSuppliers(t *testing.T) {
	ctx, _ := testutil.Context(t)
	seed := NewSeed("seed", requirements.Set{"csv": nil})
	s := New("writers", registry(
		&tool.Descriptor{Name: "csv", Requires: []string{"raw", "foo"}},
	), nil)
	leaf := New("inputs", registry(&tool.Descriptor{Name: "raw"}), nil)
	other := New("network", registry(&tool.Descriptor{Name: "links"}), nil)
	s.Connect([]*Station{seed}, []*Station{leaf, other})

	require.NoError(t, s.Engage(ctx))
	err := s.ValidateSuppliers()

	var missing *MissingRequirementsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "writers", missing.Station)
	assert.Equal(t, []string{"foo"}, missing.Missing)
	assert.Equal(t, []string{"inputs", "network"}, missing.Suppliers)
	assert.Contains(t, err.Error(), "foo")
}

func TestValidateSuppliers_NoRequirements(t *testing.T) {
	s := New("leaf", registry(&tool.Descriptor{Name: "raw"}), nil)
	assert.NoError(t, s.ValidateSuppliers())
}

func TestBuild_ImportsSupplierResources(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, root, mid, leaf := chain(requirements.Set{"csv": {"car"}}, true, false)
	for _, s := range []*Station{root, mid, leaf} {
		require.NoError(t, s.Engage(ctx))
	}

	var msgs []string
	rep := progress.Func(func(_ context.Context, msg string) { msgs = append(msgs, msg) })

	require.NoError(t, leaf.Build(ctx, rep))
	require.NoError(t, mid.Build(ctx, rep))
	require.NoError(t, root.Build(ctx, rep))

	assert.Equal(t, []string{"Building raw.", "Building csv:car."}, msgs)

	csv, ok := mid.Tool("csv:car")
	require.True(t, ok)
	assert.Contains(t, csv.Resources(), "raw")
	assert.Contains(t, root.Imported(), "csv:car")
}

func TestBuild_MissingResource(t *testing.T) {
	ctx, _ := testutil.Context(t)
	// mid asks for raw:car but leaf exports only raw:bus.
	mid := New("mid", registry(
		&tool.Descriptor{Name: "csv", Requires: []string{"raw"}, CarryOptions: true},
	), nil)
	leaf := New("leaf", registry(&tool.Descriptor{Name: "raw", CarryOptions: true}), nil)
	mid.Connect(nil, []*Station{leaf})
	leaf.Connect([]*Station{mid}, nil)

	require.NoError(t, mid.LoadAllTools("car"))
	require.NoError(t, leaf.LoadAllTools("bus"))
	require.NoError(t, leaf.Build(ctx, nil))

	err := mid.Build(ctx, nil)
	var missing *tool.MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "raw:car", missing.Key)
	assert.Equal(t, "csv:car", missing.Tool)
}

func TestBuild_DuplicateExportKey(t *testing.T) {
	ctx, _ := testutil.Context(t)
	a := New("a", registry(&tool.Descriptor{Name: "raw"}), nil)
	b := New("b", registry(&tool.Descriptor{Name: "raw"}), nil)
	top := New("top", nil, nil)
	top.Connect(nil, []*Station{a, b})
	require.NoError(t, a.LoadAllTools(""))
	require.NoError(t, b.LoadAllTools(""))

	err := top.Build(ctx, nil)
	var dup *DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "raw", dup.Key)
	assert.Equal(t, []string{"a", "b"}, dup.Suppliers)
}

func TestBuild_SameSupplierListedTwice(t *testing.T) {
	ctx, _ := testutil.Context(t)
	a := New("a", registry(&tool.Descriptor{Name: "raw"}), nil)
	top := New("top", nil, nil)
	top.Connect(nil, []*Station{a, a})
	require.NoError(t, a.LoadAllTools(""))

	require.NoError(t, top.Build(ctx, nil))
	assert.Len(t, top.Imported(), 1)
}

func TestLoadAllTools_UsesFirstValidOption(t *testing.T) {
	s := New("plans", registry(
		&tool.Descriptor{Name: "mode_share", ValidOptions: []string{"all"}},
		&tool.Descriptor{Name: "highway_distances", ValidOptions: []string{"car"}},
		&tool.Descriptor{Name: "agent_plans"},
	), nil)

	require.NoError(t, s.LoadAllTools(""))
	assert.Equal(t, []string{"mode_share:all", "highway_distances:car", "agent_plans"}, s.Tools())

	// Loading again does not duplicate instances.
	require.NoError(t, s.LoadAllTools(""))
	assert.Len(t, s.Tools(), 3)
}

func TestLoadAllTools_RejectsInvalidOption(t *testing.T) {
	s := New("plans", registry(
		&tool.Descriptor{Name: "highway_distances", ValidOptions: []string{"car"}},
	), nil)
	var optErr *tool.InvalidOptionError
	require.ErrorAs(t, s.LoadAllTools("bus"), &optErr)
}

func TestRaiseDepth(t *testing.T) {
	s := New("s", nil, nil)
	assert.True(t, s.RaiseDepth(2))
	assert.False(t, s.RaiseDepth(1))
	assert.False(t, s.RaiseDepth(2))
	assert.Equal(t, 2, s.Depth())
}

func TestDescribe(t *testing.T) {
	_, root, mid, leaf := chain(requirements.Set{"csv": nil}, false, false)

	out := mid.Describe()
	assert.Contains(t, out, "👉️ mid (depth 0):")
	assert.Contains(t, out, "Managers: [root]")
	assert.Contains(t, out, "Suppliers: [leaf]")
	assert.Contains(t, out, "Tooling: [csv]")

	assert.True(t, strings.Contains(leaf.Describe(), "Suppliers: -None-"))
	assert.True(t, strings.Contains(root.Describe(), "Tooling: -None-"))
	assert.True(t, mid.HasManager(root))
	assert.False(t, mid.HasManager(leaf))
}
