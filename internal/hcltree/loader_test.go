package hcltree

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brewmaster/internal/config"
	"github.com/vk/brewmaster/internal/testutil"
	"github.com/vk/brewmaster/internal/tree"
)

func employees() config.Descriptor {
	return config.Descriptor{RootName: "Employees", Variables: map[string]string{"site": "paris"}}
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `
Employees {
  Cook "gordon" {
    catchphrase = upper("it's raw")
    years       = 2 * 10
    shift       = null
  }
  Waiter "ann" {
    tips    = 12.5
    station = format("%s-%d", var.site, 3)
    trainee = true
  }
}
`,
	})

	// --- Act ---
	node, err := NewLoader().Load(context.Background(), employees(), filepath.Join(root, "main.hcl"))

	// --- Assert ---
	require.NoError(t, err)
	want := tree.NewElement("Employees").Append(
		tree.NewElement("Cook").SetAttr("name", "gordon").SetAttr("catchphrase", "IT'S RAW").SetAttr("years", "20"),
		tree.NewElement("Waiter").SetAttr("name", "ann").SetAttr("tips", "12.5").SetAttr("station", "paris-3").SetAttr("trainee", "true"),
	)
	testutil.RequireTreesEqual(t, want, node)

	cook := node.Children()[0]
	assert.True(t, strings.HasPrefix(tree.SourceOf(cook), filepath.Join(root, "main.hcl")+":3,3-"), tree.SourceOf(cook))
}

func TestLoader_LoadDirectory(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"a_other.hcl":       `Inventory { flour = 3 }`,
		"staff/notes.txt":   `Employees {}`,
		"staff/extra.hcl":   `Suppliers {}`,
		"staff/empty/x.hcl": ``,

		"staff/main.hcl": `
Employees {
  Cook {
    name = "remy"
  }
}
`,
	})

	node, err := NewLoader().Load(context.Background(), employees(), root)

	require.NoError(t, err)
	testutil.RequireTreesEqual(t,
		tree.NewElement("Employees").Append(tree.NewElement("Cook").SetAttr("name", "remy")),
		node)
}

func TestLoader_CustomLabelAttributes(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `
Employees {
  Cook "line" "gordon" {}
}
`,
	})
	desc := employees()
	desc.LabelAttributes = []string{"station", "name"}

	node, err := NewLoader().Load(context.Background(), desc, root)

	require.NoError(t, err)
	testutil.RequireTreesEqual(t,
		tree.NewElement("Employees").Append(tree.NewElement("Cook").SetAttr("station", "line").SetAttr("name", "gordon")),
		node)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "missing root",
			files:       map[string]string{"main.hcl": `Inventory {}`},
			errContains: `no "Employees" block found`,
		},
		{
			name: "duplicate root",
			files: map[string]string{
				"a.hcl": `Employees {}`,
				"b.hcl": `Employees {}`,
			},
			errContains: `Duplicate "Employees" block`,
		},
		{
			name:        "too many labels",
			files:       map[string]string{"main.hcl": "Employees {\n  Cook \"a\" \"b\" {}\n}\n"},
			errContains: "Too many block labels",
		},
		{
			name:        "undefined variable",
			files:       map[string]string{"main.hcl": "Employees {\n  Cook { name = var.chef }\n}\n"},
			errContains: "No value was provided for var.chef",
		},
		{
			name:        "unsupported reference",
			files:       map[string]string{"main.hcl": "Employees {\n  Cook { name = local.chef }\n}\n"},
			errContains: "Unsupported reference",
		},
		{
			name:        "unknown function",
			files:       map[string]string{"main.hcl": "Employees {\n  Cook { name = shout(\"x\") }\n}\n"},
			errContains: "Call to unknown function",
		},
		{
			name:        "collection value",
			files:       map[string]string{"main.hcl": "Employees {\n  Cook { name = [\"a\", \"b\"] }\n}\n"},
			errContains: "expected a string, number or bool",
		},
		{
			name:        "syntax error",
			files:       map[string]string{"main.hcl": `Employees { Cook {`},
			errContains: "failed to parse HCL file",
		},
		{
			name:        "no hcl files",
			files:       map[string]string{"main.yaml": `Employees: {}`},
			errContains: "no .hcl files found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			root := testutil.WriteFiles(t, tc.files)

			// --- Act ---
			node, err := NewLoader().Load(context.Background(), employees(), root)

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, node)
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestLoader_InvalidInputs(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), config.Descriptor{}, t.TempDir())
	assert.ErrorContains(t, err, "root name must not be empty")

	_, err = NewLoader().Load(context.Background(), employees(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
