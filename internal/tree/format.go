package tree

import (
	"fmt"
	"strings"
)

// Format renders n and its descendants as indented text, one element per
// line with attributes in declaration order:
//
//	Employees
//	  Cook name="gordon" catchphrase="Order up!"
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n, 0)
	return sb.String()
}

func format(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Name())
	for _, name := range n.AttributeNames() {
		v, _ := n.Attribute(name)
		fmt.Fprintf(sb, " %s=%q", name, v)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children() {
		format(sb, c, depth+1)
	}
}
