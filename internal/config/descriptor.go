package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultLabelAttribute receives the first label of an HCL block.
const DefaultLabelAttribute = "name"

// Descriptor tells a Loader which element of a script to return and what
// context to evaluate it in.
type Descriptor struct {
	// RootName is the tag of the top-level element to return.
	RootName string
	// Variables are exposed to scripts as var.<name>.
	Variables map[string]string
	// LabelAttributes name the attributes that block labels are stored in,
	// in label order. Empty means []string{DefaultLabelAttribute}.
	LabelAttributes []string
}

// Labels returns the effective label attribute names.
func (d Descriptor) Labels() []string {
	if len(d.LabelAttributes) == 0 {
		return []string{DefaultLabelAttribute}
	}
	return slices.Clone(d.LabelAttributes)
}

// Validate checks the descriptor for values no loader can honour.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.RootName) == "" {
		return errors.New("descriptor root name must not be empty")
	}
	seen := make(map[string]struct{}, len(d.LabelAttributes))
	for _, name := range d.LabelAttributes {
		if name == "" {
			return errors.New("label attribute names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("label attribute %q is listed twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
