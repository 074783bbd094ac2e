package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/brewmaster/internal/tree"
)

// RequireTreesEqual compares two trees by tag, attributes and children,
// ignoring source positions.
func RequireTreesEqual(t *testing.T, want, got tree.Node) {
	t.Helper()
	require.NotNil(t, got, "tree is nil")
	require.Equal(t, tree.Format(want), tree.Format(got))
}
