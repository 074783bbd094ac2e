package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Element {
	return NewElement("Employees").Append(
		NewElement("Cook").SetAttr("name", "alice").SetAttr("catchphrase", "Order up!"),
		NewElement("Waiter").SetAttr("name", "bob").SetAttr("tips", "12.5"),
		NewElement("Cook").SetAttr("name", "carl"),
	)
}

func TestElement_AttributesKeepDeclarationOrder(t *testing.T) {
	e := NewElement("Waiter").
		SetAttr("name", "bob").
		SetAttr("tips", "1").
		SetAttr("name", "robert")

	assert.Equal(t, []string{"name", "tips"}, e.AttributeNames())

	v, ok := e.Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "robert", v)

	_, ok = e.Attribute("missing")
	assert.False(t, ok)
}

func TestElement_AccessorsReturnCopies(t *testing.T) {
	root := sampleTree()

	kids := root.Children()
	kids[0] = NewElement("Intruder")

	cook := root.Children()[0].(*Element)
	names := cook.AttributeNames()
	names[0] = "renamed"

	assert.Equal(t, "Cook", root.Children()[0].Name())
	assert.Equal(t, []string{"name", "catchphrase"}, cook.AttributeNames())
}

func TestSourceOf(t *testing.T) {
	assert.Equal(t, "main.hcl:3,3-7", SourceOf(NewElement("Cook").WithSource("main.hcl:3,3-7")))
	assert.Equal(t, "", SourceOf(NewElement("Cook")))
}

func TestLookup(t *testing.T) {
	root := sampleTree()

	testCases := []struct {
		name      string
		path      string
		expectErr bool
		wantName  string
		wantAttr  string
	}{
		{name: "root", path: "Employees", wantName: "Employees"},
		{name: "indexed child", path: "Employees.Cook[2]", wantName: "Cook", wantAttr: "carl"},
		{name: "first by name", path: "Employees.Cook", wantName: "Cook", wantAttr: "alice"},
		{name: "waiter", path: "Employees.Waiter[1]", wantName: "Waiter", wantAttr: "bob"},
		{name: "error - wrong root", path: "Staff.Cook[0]", expectErr: true},
		{name: "error - index names another tag", path: "Employees.Cook[1]", expectErr: true},
		{name: "error - index out of range", path: "Employees.Cook[9]", expectErr: true},
		{name: "error - missing name", path: "Employees.Janitor", expectErr: true},
		{name: "error - malformed", path: "Employees..Cook", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Lookup(root, tc.path)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, n.Name())
			if tc.wantAttr != "" {
				v, _ := n.Attribute("name")
				assert.Equal(t, tc.wantAttr, v)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	root := NewElement("Employees").Append(
		NewElement("Cook").SetAttr("name", "gordon").SetAttr("catchphrase", "Order up!"),
		NewElement("Waiter"),
	)

	want := "Employees\n" +
		"  Cook name=\"gordon\" catchphrase=\"Order up!\"\n" +
		"  Waiter\n"
	assert.Equal(t, want, Format(root))
}
