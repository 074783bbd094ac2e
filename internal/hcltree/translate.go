package hcltree

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/brewmaster/internal/tree"
)

// translateBlock converts a block and everything nested in it into a tree
// element, evaluating attributes against evalCtx.
func translateBlock(block *hclsyntax.Block, labels []string, evalCtx *hcl.EvalContext) (*tree.Element, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	defRange := block.DefRange()
	el := tree.NewElement(block.Type).WithSource(defRange.String())

	if len(block.Labels) > len(labels) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Too many block labels",
			Detail:   fmt.Sprintf("Block %q has %d labels but only %d label attributes are configured.", block.Type, len(block.Labels), len(labels)),
			Subject:  &defRange,
		})
		return nil, diags
	}
	for i, label := range block.Labels {
		el.SetAttr(labels[i], label)
	}

	for _, attr := range sortedAttributes(block.Body.Attributes) {
		attrDiags := checkExpression(attr.Expr, evalCtx)
		diags = append(diags, attrDiags...)
		if attrDiags.HasErrors() {
			continue
		}

		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}

		raw, present, err := stringify(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported attribute value",
				Detail:   fmt.Sprintf("Attribute %q: %s.", attr.Name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		if present {
			el.SetAttr(attr.Name, raw)
		}
	}

	for _, child := range block.Body.Blocks {
		c, childDiags := translateBlock(child, labels, evalCtx)
		diags = append(diags, childDiags...)
		if c != nil {
			el.Append(c)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return el, diags
}

// sortedAttributes orders a body's attributes by their position in the
// source; hclsyntax keeps them in a map.
func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}

// stringify renders a primitive value in the raw string form stored on tree
// elements. A null value reports present=false.
func stringify(val cty.Value) (raw string, present bool, err error) {
	if val.IsNull() {
		return "", false, nil
	}
	if !val.IsWhollyKnown() {
		return "", false, fmt.Errorf("value is not known")
	}
	if !val.Type().IsPrimitiveType() {
		return "", false, fmt.Errorf("expected a string, number or bool, got %s", val.Type().FriendlyName())
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false, err
	}
	return str.AsString(), true, nil
}
