// Package yamltree reads YAML documents into attributed trees.
//
// The value under the root key is the body of the root element. Inside a body,
// scalar values become attributes, a mapping value becomes one child named by
// its key and a sequence value becomes one child per item, each named by the
// key:
//
//	Employees:
//	  Cook:
//	    - name: gordon
//	      catchphrase: Order up!
//	  Waiter:
//	    name: ann
//	    tips: 12.5
//
// Null values are absent, anchors and merge keys are followed.
package yamltree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/brewmaster/internal/config"
	"github.com/vk/brewmaster/internal/ctxlog"
	"github.com/vk/brewmaster/internal/fsutil"
	"github.com/vk/brewmaster/internal/tree"
)

// Extensions are the file extensions of YAML documents.
var Extensions = []string{".yaml", ".yml"}

const (
	tagNull  = "!!null"
	tagMerge = "!!merge"
)

// Loader is the YAML implementation of the config.Loader interface.
// Descriptor variables and label attributes have no meaning in YAML and are
// ignored.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML document under paths and returns the element stored
// under desc.RootName. Exactly one document may define it.
func (l *Loader) Load(ctx context.Context, desc config.Descriptor, paths ...string) (tree.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths), "root", desc.RootName)

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	files, err := fsutil.Collect(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	var (
		root     *tree.Element
		rootFile string
	)
	for _, file := range files {
		docs, err := readDocuments(file)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			el, err := findRoot(file, doc, desc.RootName)
			if err != nil {
				return nil, err
			}
			if el == nil {
				continue
			}
			if root != nil {
				return nil, fmt.Errorf("duplicate %q root in %s, first declared at %s", desc.RootName, el.Source(), rootFile)
			}
			root, rootFile = el, el.Source()
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no %q root found in %s", desc.RootName, strings.Join(files, ", "))
	}

	logger.Debug("YAML loading complete.", "source", root.Source(), "children", len(root.Children()))
	return root, nil
}

// Parse reads a single YAML document from r. It is the in-memory counterpart
// of Load.
func Parse(r io.Reader, source, rootName string) (tree.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", source, err)
	}
	el, err := findRoot(source, &doc, rootName)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("no %q root found in %s", rootName, source)
	}
	return el, nil
}

func readDocuments(file string) ([]*yaml.Node, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", file, err)
	}
	defer f.Close()

	var docs []*yaml.Node
	dec := yaml.NewDecoder(f)
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", file, err)
		}
		docs = append(docs, &doc)
	}
}

// findRoot returns the element under rootName in doc, or nil when doc does
// not define it.
func findRoot(file string, doc *yaml.Node, rootName string) (*tree.Element, error) {
	w := newWalker(file)
	top := doc
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, nil
		}
		top = top.Content[0]
	}
	if isNull(top) {
		return nil, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: a YAML document must be a mapping", position(file, top))
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Value != rootName {
			continue
		}
		body, err := w.resolve(value)
		if err != nil {
			return nil, err
		}
		return w.translate(rootName, key, body)
	}
	return nil, nil
}
