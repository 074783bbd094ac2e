package hcltree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brewmaster/internal/config"
	"github.com/vk/brewmaster/internal/testutil"
	"github.com/vk/brewmaster/internal/tree"
)

func TestRender_RoundTrips(t *testing.T) {
	// --- Arrange ---
	original := tree.NewElement("Employees").Append(
		tree.NewElement("Cook").SetAttr("name", "gordon").SetAttr("catchphrase", `Say "yes, chef"`),
		tree.NewElement("Waiter").SetAttr("name", "ann").SetAttr("tips", "12.5"),
		tree.NewElement("FunctionalProgrammer").Append(tree.NewElement("Pet").SetAttr("kind", "${not a template}")),
	)

	// --- Act ---
	out := Render(original)
	root := testutil.WriteFiles(t, map[string]string{"rendered.hcl": string(out)})
	reloaded, err := NewLoader().Load(context.Background(), config.Descriptor{RootName: "Employees"}, root)

	// --- Assert ---
	require.NoError(t, err, string(out))
	testutil.RequireTreesEqual(t, original, reloaded)
	assert.Contains(t, string(out), "Employees {")
	assert.Contains(t, string(out), `tips = "12.5"`)
}
