package yamltree

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/brewmaster/internal/tree"
)

// maxAliasExpansions bounds how many aliases one root may follow, nested
// expansions included.
const maxAliasExpansions = 10000

// walker translates one root. It tracks the mappings being filled so an alias
// back to one of them is reported instead of expanded forever.
type walker struct {
	file    string
	filling map[*yaml.Node]bool
	aliases int
}

func newWalker(file string) *walker {
	return &walker{file: file, filling: make(map[*yaml.Node]bool)}
}

// translate builds the element named name whose body is the mapping body.
// keyNode marks the declaration site.
func (w *walker) translate(name string, keyNode, body *yaml.Node) (*tree.Element, error) {
	el := tree.NewElement(name).WithSource(position(w.file, keyNode))
	if isNull(body) {
		return el, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: body of %q must be a mapping", position(w.file, body), name)
	}
	if err := w.fill(el, body); err != nil {
		return nil, err
	}
	return el, nil
}

// fill adds the entries of mapping to el in document order.
func (w *walker) fill(el *tree.Element, mapping *yaml.Node) error {
	w.filling[mapping] = true
	defer delete(w.filling, mapping)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value, err := w.resolve(mapping.Content[i+1])
		if err != nil {
			return err
		}

		if key.ShortTag() == tagMerge {
			if err := w.merge(el, value); err != nil {
				return err
			}
			continue
		}

		switch {
		case isNull(value):
		case value.Kind == yaml.ScalarNode:
			el.SetAttr(key.Value, value.Value)
		case value.Kind == yaml.MappingNode:
			child, err := w.translate(key.Value, key, value)
			if err != nil {
				return err
			}
			el.Append(child)
		case value.Kind == yaml.SequenceNode:
			for _, item := range value.Content {
				body, err := w.resolve(item)
				if err != nil {
					return err
				}
				child, err := w.translate(key.Value, item, body)
				if err != nil {
					return err
				}
				el.Append(child)
			}
		default:
			return fmt.Errorf("%s: unsupported YAML value for %q", position(w.file, value), key.Value)
		}
	}
	return nil
}

// merge applies a "<<" merge key: a mapping or a sequence of mappings.
func (w *walker) merge(el *tree.Element, value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		return w.fill(el, value)
	case yaml.SequenceNode:
		for _, item := range value.Content {
			resolved, err := w.resolve(item)
			if err != nil {
				return err
			}
			if err := w.merge(el, resolved); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: merge value must be a mapping", position(w.file, value))
	}
}

// resolve follows aliases. An alias to a mapping that is still being filled
// would make the tree infinite and is an error.
func (w *walker) resolve(n *yaml.Node) (*yaml.Node, error) {
	for n != nil && n.Kind == yaml.AliasNode {
		w.aliases++
		if w.aliases > maxAliasExpansions {
			return nil, fmt.Errorf("%s: too many alias expansions (limit %d)", position(w.file, n), maxAliasExpansions)
		}
		if w.filling[n.Alias] {
			return nil, fmt.Errorf("%s: alias %q refers to its own ancestor", position(w.file, n), n.Value)
		}
		n = n.Alias
	}
	return n, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull)
}

func position(file string, n *yaml.Node) string {
	return fmt.Sprintf("%s:%d,%d", file, n.Line, n.Column)
}
