package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertBuiltBefore checks that the tool labelled first finished building
// before the tool labelled second.
func AssertBuiltBefore(t *testing.T, r *Recorder, first, second string) {
	t.Helper()

	built := r.Built()
	i := slices.Index(built, first)
	j := slices.Index(built, second)
	require.NotEqual(t, -1, i, "tool %q was never built (built: %v)", first, built)
	require.NotEqual(t, -1, j, "tool %q was never built (built: %v)", second, built)
	require.Less(t, i, j, "expected %q to be built before %q (built: %v)", first, second, built)
}
