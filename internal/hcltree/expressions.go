package hcltree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, e.g. var.chef.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// checkExpression reports references to undefined variables and calls to
// unknown functions before the expression is evaluated, so a script with
// several mistakes reports all of them at once.
func checkExpression(expr hcl.Expression, evalCtx *hcl.EvalContext) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, traversal := range expr.Variables() {
		diags = append(diags, checkTraversal(traversal, evalCtx)...)
	}

	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		return diags
	}
	calls := calledFunctions(syntaxExpr)
	for _, call := range calls {
		if _, known := evalCtx.Functions[call.Name]; known {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q. Available functions: %s.", call.Name, strings.Join(functionNames(evalCtx), ", ")),
			Subject:  call.NameRange.Ptr(),
		})
	}
	return diags
}

func checkTraversal(traversal hcl.Traversal, evalCtx *hcl.EvalContext) hcl.Diagnostics {
	rng := traversal.SourceRange()
	if traversal.RootName() != variablesRoot {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported reference",
			Detail:   fmt.Sprintf("Only %s.<name> references are available, found %s.", variablesRoot, TraversalKey(traversal)),
			Subject:  &rng,
		}}
	}
	if len(traversal) < 2 {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incomplete variable reference",
			Detail:   fmt.Sprintf("A variable name is required after %q.", variablesRoot),
			Subject:  &rng,
		}}
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return nil
	}
	vars := evalCtx.Variables[variablesRoot]
	if vars.Type().HasAttribute(attr.Name) {
		return nil
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Undefined variable",
		Detail:   fmt.Sprintf("No value was provided for %s.", TraversalKey(traversal[:2])),
		Subject:  &rng,
	}}
}

// calledFunctions walks the syntax tree and returns every function call in
// source order.
func calledFunctions(expr hclsyntax.Expression) []*hclsyntax.FunctionCallExpr {
	var calls []*hclsyntax.FunctionCallExpr
	_ = hclsyntax.VisitAll(expr, func(n hclsyntax.Node) hcl.Diagnostics {
		if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
			calls = append(calls, call)
		}
		return nil
	})
	return calls
}

func functionNames(evalCtx *hcl.EvalContext) []string {
	names := make([]string, 0, len(evalCtx.Functions))
	for name := range evalCtx.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
