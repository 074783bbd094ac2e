package config

import (
	"context"

	"github.com/vk/brewmaster/internal/tree"
)

// Loader is the interface for a format-specific script loader.
type Loader interface {
	// Load evaluates the scripts found at the given paths and returns the
	// element named by desc.RootName.
	Load(ctx context.Context, desc Descriptor, paths ...string) (tree.Node, error)
}
