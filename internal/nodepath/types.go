package nodepath

// Segment is a single component of a path, e.g. `name[index]`.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewSegment creates a new segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewSegmentWithIndex creates a new segment that includes an index.
func NewSegmentWithIndex(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the segment has an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Path is the structured representation of a node's position in a tree.
type Path struct {
	Segments []Segment
}

// Root returns a single-segment path for a tree root.
func Root(name string) *Path {
	return &Path{Segments: []Segment{NewSegment(name)}}
}

// Child returns a new path extended by one indexed segment. The receiver is
// not modified, so sibling paths never share backing storage.
func (p *Path) Child(name string, index int) *Path {
	var segs []Segment
	if p != nil {
		segs = make([]Segment, len(p.Segments), len(p.Segments)+1)
		copy(segs, p.Segments)
	}
	return &Path{Segments: append(segs, NewSegmentWithIndex(name, index))}
}

// Depth returns the number of segments in the path.
func (p *Path) Depth() int {
	if p == nil {
		return 0
	}
	return len(p.Segments)
}
