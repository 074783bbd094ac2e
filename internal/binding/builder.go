// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/brewmaster/internal/ctxlog"
	"github.com/vk/brewmaster/internal/nodepath"
	"github.com/vk/brewmaster/internal/tree"
)

// Build binds root into a new graph whose top-level value has type T. T is
// either a pointer to a bindable struct or an interface with registered
// variants, in which case root's tag selects the concrete type.
//
// On error the zero T is returned.
func Build[T any](ctx context.Context, reg *Registry, root tree.Node) (T, error) {
	var zero T
	v, err := reg.Build(ctx, root, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("built %T is not assignable to %s", v, reflect.TypeFor[T]())
	}
	return out, nil
}

// Build is the reflective form of the package-level Build. The returned value
// is always a pointer to the concrete struct.
func (r *Registry) Build(ctx context.Context, root tree.Node, target reflect.Type) (any, error) {
	if root == nil {
		return nil, errors.New("cannot build from a nil node")
	}
	if target == nil {
		return nil, &ConfigurationError{Reason: "nil build target"}
	}

	rootPath := nodepath.Root(root.Name())
	variant, err := r.rootVariant(root, rootPath, target)
	if err != nil {
		return nil, err
	}

	ctx, logger := ctxlog.With(ctx, "root", root.Name(), "target", target.String())
	logger.Debug("Starting build.")

	b := &build{reg: r, identity: newIdentity()}
	inst, err := b.node(ctx, root, rootPath, variant.Type)
	if err != nil {
		logger.Debug("Build failed.", "error", err)
		return nil, err
	}
	logger.Debug("Finished build.")
	return inst.Interface(), nil
}

func (r *Registry) rootVariant(root tree.Node, path *nodepath.Path, target reflect.Type) (Variant, error) {
	switch {
	case target.Kind() == reflect.Interface:
		candidates := r.variants[target]
		if len(candidates) == 0 {
			return Variant{}, &ConfigurationError{Type: target, Reason: "no variants registered for build target"}
		}
		return resolve(root.Name(), nodeRef(root, path), candidates)
	case target.Kind() == reflect.Pointer && target.Elem().Kind() == reflect.Struct:
		return Variant{Tag: discriminatorOf(target.Elem()), Type: target.Elem()}, nil
	default:
		return Variant{}, &ConfigurationError{Type: target, Reason: "build target must be a pointer to a struct or an interface"}
	}
}

// Initializer is implemented by types that need to finish their own setup
// once all of their bindings are populated. Initialize runs once per
// constructed instance, so a singleton is initialized once per build.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// build carries the state of one top-level Build call.
type build struct {
	reg      *Registry
	identity *identity
}

// node constructs and binds an instance of struct type t from n.
func (b *build) node(ctx context.Context, n tree.Node, path *nodepath.Path, t reflect.Type) (reflect.Value, error) {
	if err := ctx.Err(); err != nil {
		return reflect.Value{}, err
	}
	if path.Depth() > b.reg.maxDepth {
		return reflect.Value{}, fmt.Errorf("%w: %s is deeper than %d", ErrMaxDepth, path, b.reg.maxDepth)
	}
	desc, err := b.reg.Describe(t)
	if err != nil {
		return reflect.Value{}, err
	}

	ctx, logger := ctxlog.With(ctx, "node", path.String(), "type", desc.Type.String())
	if tag := n.Name(); tag != desc.Tag {
		logger.Debug("Node tag differs from the type discriminator.", "tag", tag, "discriminator", desc.Tag)
	}

	inst, reused, err := b.identity.getOrCreate(desc, func() (reflect.Value, error) {
		inst := reflect.New(desc.Type)
		if err := b.bind(ctx, n, path, desc, inst.Elem()); err != nil {
			return reflect.Value{}, err
		}
		if init, ok := inst.Interface().(Initializer); ok {
			logger.Debug("Initializing instance.")
			if err := init.Initialize(ctx); err != nil {
				return reflect.Value{}, fmt.Errorf("failed to initialize %s at %s: %w", desc.Type, nodeRef(n, path), err)
			}
		}
		return inst, nil
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if reused {
		logger.Debug("Reusing singleton instance.")
	}
	return inst, nil
}

// bind populates every effective binding of desc on target.
func (b *build) bind(ctx context.Context, n tree.Node, path *nodepath.Path, desc *TypeDescriptor, target reflect.Value) error {
	children := n.Children()
	claimed := make([]bool, len(children))
	ref := nodeRef(n, path)

	for i := range desc.Fields {
		fb := &desc.Fields[i]
		field := target.FieldByIndex(fb.Index)
		var err error
		switch fb.Kind {
		case KindScalar:
			err = b.scalar(n, ref, fb, field)
		case KindChild:
			err = b.child(ctx, children, claimed, path, ref, fb, field)
		case KindCollection:
			err = b.collection(ctx, children, claimed, path, fb, field)
		}
		if err != nil {
			return err
		}
	}

	for i, c := range children {
		if claimed[i] {
			continue
		}
		return &UnknownVariantError{
			Node:       nodeRef(c, path.Child(c.Name(), i)),
			Tag:        c.Name(),
			Candidates: desc.slotTags(),
		}
	}
	return nil
}

func (b *build) scalar(n tree.Node, ref string, fb *FieldBinding, field reflect.Value) error {
	var raw *string
	if v, ok := n.Attribute(fb.Name); ok {
		raw = &v
	}
	v, err := coerce(raw, fb, ref)
	if err != nil {
		return err
	}
	field.Set(v)
	return nil
}

func (b *build) child(ctx context.Context, children []tree.Node, claimed []bool, path *nodepath.Path, ref string, fb *FieldBinding, field reflect.Value) error {
	match := -1
	var variant Variant
	for i, c := range children {
		v, ok := fb.match(c)
		if !ok {
			continue
		}
		if match >= 0 {
			return &ConfigurationError{
				Type:   fb.Owner,
				Field:  fb.Field,
				Node:   ref,
				Reason: fmt.Sprintf("single-child slot %q matches more than one child (%s[%d] and %s[%d])", fb.Name, children[match].Name(), match, c.Name(), i),
			}
		}
		match, variant = i, v
		claimed[i] = true
	}
	if match < 0 {
		ctxlog.FromContext(ctx).Debug("Child slot left empty.", "field", fb.Name)
		return nil
	}

	c := children[match]
	inst, err := b.node(ctx, c, path.Child(c.Name(), match), variant.Type)
	if err != nil {
		return err
	}
	field.Set(inst)
	return nil
}

func (b *build) collection(ctx context.Context, children []tree.Node, claimed []bool, path *nodepath.Path, fb *FieldBinding, field reflect.Value) error {
	logger := ctxlog.FromContext(ctx)
	sink := newCollection(fb, field)
	for i, c := range children {
		variant, ok := fb.match(c)
		if !ok {
			continue
		}
		claimed[i] = true
		childPath := path.Child(c.Name(), i)

		inst, err := b.node(ctx, c, childPath, variant.Type)
		if err != nil {
			return err
		}
		key, err := collectionKey(c, nodeRef(c, childPath), fb)
		if err != nil {
			return err
		}
		if sink.put(key, inst) {
			logger.Debug("Duplicate collection key, later entry wins.", "field", fb.Name, "key", key.Interface())
		}
	}
	sink.commit()
	return nil
}

// collectionKey extracts and coerces the key of a collection entry.
func collectionKey(c tree.Node, ref string, fb *FieldBinding) (reflect.Value, error) {
	raw := c.Name()
	if fb.Key != "" {
		v, ok := c.Attribute(fb.Key)
		if !ok {
			return reflect.Value{}, &ConfigurationError{
				Type:   fb.Owner,
				Field:  fb.Field,
				Node:   ref,
				Reason: fmt.Sprintf("collection entry is missing key attribute %q", fb.Key),
			}
		}
		raw = v
	}
	key, err := parseScalar(raw, fb.keyType, fb.keyScalar)
	if err != nil {
		return reflect.Value{}, &CoercionError{Field: fb.Key, Node: ref, Raw: raw, Target: fb.keyType, Err: err}
	}
	return key, nil
}

// collection abstracts over OrderedMap and plain map fields.
type collection struct {
	field   reflect.Value
	ordered orderedSink
	native  reflect.Value
}

func newCollection(fb *FieldBinding, field reflect.Value) *collection {
	c := &collection{field: field}
	if fb.ordered {
		c.ordered = field.Addr().Interface().(orderedSink)
		c.ordered.reset()
		return c
	}
	c.native = reflect.MakeMap(field.Type())
	return c
}

// put stores inst under key and reports whether an earlier entry was replaced.
func (c *collection) put(key, inst reflect.Value) bool {
	if c.ordered != nil {
		k := key.String()
		existed := c.ordered.has(k)
		c.ordered.put(k, inst.Interface())
		return existed
	}
	existed := c.native.MapIndex(key).IsValid()
	c.native.SetMapIndex(key, inst)
	return existed
}

func (c *collection) commit() {
	if c.ordered == nil {
		c.field.Set(c.native)
	}
}

// nodeRef renders a node's address for error messages, with its source
// position when the tree carries one.
func nodeRef(n tree.Node, path *nodepath.Path) string {
	if src := tree.SourceOf(n); src != "" {
		return path.String() + " (" + src + ")"
	}
	return path.String()
}
