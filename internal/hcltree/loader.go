package hcltree

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/brewmaster/internal/config"
	"github.com/vk/brewmaster/internal/ctxlog"
	"github.com/vk/brewmaster/internal/fsutil"
	"github.com/vk/brewmaster/internal/tree"
)

// Extension is the file extension of HCL scripts.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL script loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and returns the single top-level
// block whose type is desc.RootName, translated into a tree. Other top-level
// blocks are ignored.
func (l *Loader) Load(ctx context.Context, desc config.Descriptor, paths ...string) (tree.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths), "root", desc.RootName)

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	files, err := fsutil.Collect(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", Extension, strings.Join(paths, ", "))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var bodies []*hclsyntax.Body
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		body, ok := hclFile.Body.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("failed to parse HCL file %s: native syntax required", file)
		}
		bodies = append(bodies, body)
	}

	root, diags := findRoot(bodies, desc.RootName)
	if diags.HasErrors() {
		return nil, diags
	}
	if root == nil {
		return nil, fmt.Errorf("no %q block found in %s", desc.RootName, strings.Join(files, ", "))
	}

	el, diags := translateBlock(root, desc.Labels(), newEvalContext(desc.Variables))
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate %q block: %w", desc.RootName, diags)
	}
	logger.Debug("HCL loading complete.", "source", el.Source(), "children", len(el.Children()))
	return el, nil
}

// findRoot searches the top-level blocks of all bodies for the one named
// name. It returns a diagnostic error if more than one is found.
func findRoot(bodies []*hclsyntax.Body, name string) (*hclsyntax.Block, hcl.Diagnostics) {
	var found *hclsyntax.Block
	var diags hcl.Diagnostics

	for _, body := range bodies {
		for _, block := range body.Blocks {
			if block.Type != name {
				continue
			}
			if found != nil {
				defRange := block.DefRange()
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed; the first is declared at " + found.DefRange().String() + ".",
					Subject:  &defRange,
				})
				continue
			}
			found = block
		}
	}
	return found, diags
}
