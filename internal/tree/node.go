package tree

// Node is a read-only view of one node of an attributed tree.
type Node interface {
	// Name is the node's tag, e.g. the HCL block type.
	Name() string
	// Attribute returns the raw value of the named attribute.
	Attribute(name string) (string, bool)
	// AttributeNames lists attribute names in declaration order.
	AttributeNames() []string
	// Children lists child nodes in declaration order.
	Children() []Node
}

// Sourced is implemented by nodes that know where they were declared.
type Sourced interface {
	Source() string
}

// SourceOf returns the node's declaration site, or "" if it is unknown.
func SourceOf(n Node) string {
	if s, ok := n.(Sourced); ok {
		return s.Source()
	}
	return ""
}

// Element is the in-memory Node implementation produced by the loaders.
type Element struct {
	name     string
	source   string
	names    []string
	values   map[string]string
	children []Node
}

// NewElement creates an empty element with the given tag.
func NewElement(name string) *Element {
	return &Element{
		name:   name,
		values: make(map[string]string),
	}
}

// SetAttr sets an attribute. Setting a name twice keeps its original
// position and replaces the value.
func (e *Element) SetAttr(name, value string) *Element {
	if _, exists := e.values[name]; !exists {
		e.names = append(e.names, name)
	}
	e.values[name] = value
	return e
}

// Append adds children in order.
func (e *Element) Append(children ...Node) *Element {
	e.children = append(e.children, children...)
	return e
}

// WithSource records the declaration site used in error messages.
func (e *Element) WithSource(source string) *Element {
	e.source = source
	return e
}

// Name implements Node.
func (e *Element) Name() string { return e.name }

// Attribute implements Node.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// AttributeNames implements Node.
func (e *Element) AttributeNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Children implements Node.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// Source implements Sourced.
func (e *Element) Source() string { return e.source }
