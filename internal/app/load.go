package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/brewmaster/internal/config"
	"github.com/vk/brewmaster/internal/ctxlog"
	"github.com/vk/brewmaster/internal/hcltree"
	"github.com/vk/brewmaster/internal/tree"
	"github.com/vk/brewmaster/internal/yamltree"
)

// LoaderFor picks the loader for a set of script paths by extension. Paths
// without a YAML extension, directories included, are read as HCL.
func LoaderFor(paths []string) (config.Loader, error) {
	yaml, hcl := 0, 0
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			yaml++
		default:
			hcl++
		}
	}
	switch {
	case yaml > 0 && hcl > 0:
		return nil, fmt.Errorf("cannot mix HCL and YAML scripts in one run")
	case yaml > 0:
		return yamltree.NewLoader(), nil
	default:
		return hcltree.NewLoader(), nil
	}
}

// load evaluates the configured scripts and returns the tree to bind.
func (a *App) load(ctx context.Context, target Target) (tree.Node, error) {
	logger := ctxlog.FromContext(ctx)

	desc := config.Descriptor{
		RootName:        target.RootName,
		Variables:       a.config.Variables,
		LabelAttributes: a.config.LabelAttributes,
	}
	if a.config.RootName != "" {
		desc.RootName = a.config.RootName
	}

	var (
		root tree.Node
		err  error
	)
	if len(a.config.ScriptPaths) == 1 && a.config.ScriptPaths[0] == StdinPath {
		logger.Debug("Reading YAML from standard input.", "root", desc.RootName)
		root, err = yamltree.Parse(a.stdin, "<stdin>", desc.RootName)
	} else {
		var loader config.Loader
		loader, err = LoaderFor(a.config.ScriptPaths)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loading scripts.", "paths", a.config.ScriptPaths, "loader", fmt.Sprintf("%T", loader))
		root, err = loader.Load(ctx, desc, a.config.ScriptPaths...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scripts: %w", err)
	}

	if a.config.Select == "" {
		return root, nil
	}
	selected, err := tree.Lookup(root, a.config.Select)
	if err != nil {
		return nil, fmt.Errorf("failed to select %q: %w", a.config.Select, err)
	}
	logger.Debug("Selected subtree.", "path", a.config.Select, "tag", selected.Name())
	return selected, nil
}
