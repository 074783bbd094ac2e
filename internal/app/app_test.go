package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brewmaster/internal/hcltree"
	"github.com/vk/brewmaster/internal/testutil"
	"github.com/vk/brewmaster/internal/yamltree"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{"minimal", Config{ScriptPaths: []string{"staff.hcl"}}, ""},
		{"no scripts", Config{}, "at least one script path"},
		{"stdin mixed with files", Config{ScriptPaths: []string{"-", "staff.hcl"}}, "cannot be combined"},
		{"bad format", Config{ScriptPaths: []string{"a"}, Format: "xml"}, `invalid format "xml"`},
		{"bad log level", Config{ScriptPaths: []string{"a"}, LogLevel: "loud"}, `invalid log level "loud"`},
		{"bad log format", Config{ScriptPaths: []string{"a"}, LogFormat: "xml"}, `invalid log format "xml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.errContains != "" {
				assert.ErrorContains(t, err, tc.errContains)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, FormatText, cfg.Format)
		})
	}
}

func TestLoaderFor(t *testing.T) {
	loader, err := LoaderFor([]string{"a.hcl", "dir"})
	require.NoError(t, err)
	assert.IsType(t, &hcltree.Loader{}, loader)

	loader, err = LoaderFor([]string{"a.yaml", "b.YML"})
	require.NoError(t, err)
	assert.IsType(t, &yamltree.Loader{}, loader)

	_, err = LoaderFor([]string{"a.yaml", "b.hcl"})
	assert.ErrorContains(t, err, "cannot mix")
}

func TestApp_Run_Formats(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"staff.hcl": staffHCL})
	script := filepath.Join(root, "staff.hcl")
	vars := map[string]string{"tips": "12.5"}

	testCases := []struct {
		format string
		want   []string
	}{
		{FormatText, []string{
			"Employees (2)\n",
			"  gordon: Cook gordon, day shift, 20 years, catchphrase \"Order up!\"\n",
			"  ann: Waiter ann, day shift, 0 years, tips 12.50\n",
		}},
		{FormatDump, []string{"food.EmployeeDirector", `"Order up!"`, "Tips: (float64) 12.5"}},
		{FormatHCL, []string{"Employees {", `catchphrase = "Order up!"`, `tips = "12.5"`}},
		{FormatTree, []string{"Employees\n", `  Waiter name="ann" tips="12.5"`}},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			// --- Act ---
			out, logs, err := runApp(t, Config{ScriptPaths: []string{script}, Variables: vars, Format: tc.format})

			// --- Assert ---
			require.NoError(t, err)
			for _, want := range tc.want {
				assert.Contains(t, out, want)
			}
			assert.Contains(t, logs.String(), "Object graph bound.")
		})
	}
}

func TestApp_Run_UppercaseExtension(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"staff.YAML": "Employees:\n  Cook:\n    name: remy\n"})

	out, _, err := runApp(t, Config{ScriptPaths: []string{filepath.Join(root, "staff.YAML")}})

	require.NoError(t, err)
	assert.Equal(t, "Employees (1)\n  remy: Cook remy, day shift, 0 years\n", out)
}

func TestApp_Run_SelectSubtree(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"staff.hcl": staffHCL})

	out, _, err := runApp(t, Config{
		ScriptPaths: []string{root},
		Target:      "employee",
		Select:      "Employees.Waiter[1]",
		Variables:   map[string]string{"tips": "3"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Waiter ann, day shift, 0 years, tips 3.00\n", out)
}

func TestApp_Run_Stdin(t *testing.T) {
	stdin := strings.NewReader("Employees:\n  Cook:\n    name: remy\n")

	out, _, err := runApp(t, Config{ScriptPaths: []string{StdinPath}}, WithStdin(stdin))

	require.NoError(t, err)
	assert.Equal(t, "Employees (1)\n  remy: Cook remy, day shift, 0 years\n", out)
}

func TestApp_Run_Errors(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"staff.hcl": staffHCL,
		"bad.yaml":  "Employees:\n  Waiter:\n    name: ann\n    tips: lots\n",
	})

	testCases := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name:        "unknown target",
			cfg:         Config{ScriptPaths: []string{filepath.Join(root, "staff.hcl")}, Target: "menu"},
			errContains: `unknown target "menu"`,
		},
		{
			name:        "missing variable",
			cfg:         Config{ScriptPaths: []string{filepath.Join(root, "staff.hcl")}},
			errContains: "No value was provided for var.tips",
		},
		{
			name:        "bad select path",
			cfg:         Config{ScriptPaths: []string{filepath.Join(root, "staff.hcl")}, Variables: map[string]string{"tips": "1"}, Select: "Employees.Sommelier"},
			errContains: `failed to select "Employees.Sommelier"`,
		},
		{
			name:        "coercion failure",
			cfg:         Config{ScriptPaths: []string{filepath.Join(root, "bad.yaml")}},
			errContains: `cannot coerce "lots" to float64`,
		},
		{
			name:        "wrong root",
			cfg:         Config{ScriptPaths: []string{filepath.Join(root, "staff.hcl")}, RootName: "Menu"},
			errContains: `no "Menu" block found`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runApp(t, tc.cfg)

			require.Error(t, err)
			assert.ErrorContains(t, err, tc.errContains)
			assert.Empty(t, out)
		})
	}
}
