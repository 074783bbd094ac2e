package tree

import (
	"fmt"

	"github.com/vk/brewmaster/internal/nodepath"
)

// Lookup walks from root along a positional path such as
// "Employees.Cook[0]". The first segment must name the root. An indexed
// segment selects the child at that position, which must carry the segment's
// name; a segment without an index selects the first child with that name.
func Lookup(root Node, rawPath string) (Node, error) {
	p, err := nodepath.Parse(rawPath)
	if err != nil {
		return nil, err
	}

	first := p.Segments[0]
	if root.Name() != first.Name || (first.HasIndex() && first.Index != 0) {
		return nil, fmt.Errorf("path %q does not start at root %q", rawPath, root.Name())
	}

	current := root
	for _, seg := range p.Segments[1:] {
		next, err := childFor(current, seg)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", rawPath, err)
		}
		current = next
	}
	return current, nil
}

func childFor(parent Node, seg nodepath.Segment) (Node, error) {
	children := parent.Children()
	if seg.HasIndex() {
		if seg.Index >= len(children) {
			return nil, fmt.Errorf("node %q has %d children, index %d out of range", parent.Name(), len(children), seg.Index)
		}
		child := children[seg.Index]
		if child.Name() != seg.Name {
			return nil, fmt.Errorf("child %d of %q is %q, not %q", seg.Index, parent.Name(), child.Name(), seg.Name)
		}
		return child, nil
	}
	for _, child := range children {
		if child.Name() == seg.Name {
			return child, nil
		}
	}
	return nil, fmt.Errorf("node %q has no child named %q", parent.Name(), seg.Name)
}
