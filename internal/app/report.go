package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/vk/brewmaster/internal/hcltree"
	"github.com/vk/brewmaster/internal/tree"
)

// dumper prints bound graphs without pointer addresses so output is stable
// between runs.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// report writes the bound value (or the tree it came from) in the configured
// format.
func (a *App) report(root tree.Node, value any) error {
	var err error
	switch a.config.Format {
	case FormatDump:
		dumper.Fdump(a.outW, value)
	case FormatHCL:
		_, err = a.outW.Write(hcltree.Render(root))
	case FormatTree:
		_, err = io.WriteString(a.outW, tree.Format(root))
	default:
		s, ok := value.(fmt.Stringer)
		if !ok {
			dumper.Fdump(a.outW, value)
			return nil
		}
		text := s.String()
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err = io.WriteString(a.outW, text)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
