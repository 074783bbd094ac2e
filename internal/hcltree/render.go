package hcltree

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/brewmaster/internal/tree"
)

// Render writes n back out as HCL. Every attribute is rendered as a quoted
// string and no labels are used, so loading the output reproduces n.
func Render(n tree.Node) []byte {
	f := hclwrite.NewEmptyFile()
	renderNode(f.Body(), n)
	return hclwrite.Format(f.Bytes())
}

func renderNode(parent *hclwrite.Body, n tree.Node) {
	body := parent.AppendNewBlock(n.Name(), nil).Body()
	for _, name := range n.AttributeNames() {
		v, _ := n.Attribute(name)
		body.SetAttributeValue(name, cty.StringVal(v))
	}
	for i, c := range n.Children() {
		if i > 0 || len(n.AttributeNames()) > 0 {
			body.AppendNewline()
		}
		renderNode(body, c)
	}
}
