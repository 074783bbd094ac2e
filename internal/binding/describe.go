// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var stringType = reflect.TypeFor[string]()

// describe computes the descriptor of struct type t. Callers go through
// Describe, which caches the result.
func (r *Registry) describe(t reflect.Type) (*TypeDescriptor, error) {
	meta, err := readMeta(t)
	if err != nil {
		return nil, &ConfigurationError{Type: t, Reason: "invalid type marker", Err: err}
	}
	d := &TypeDescriptor{Type: t, Tag: meta.tag, Singleton: meta.singleton}

	var inherited, own []FieldBinding
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == metaType {
			continue
		}
		raw, ok := f.Tag.Lookup(tagBinding)
		if !ok || raw == "-" {
			continue
		}
		if !f.IsExported() {
			return nil, &ConfigurationError{Type: t, Field: f.Name, Reason: "binding declared on an unexported field"}
		}

		tag := parseTag(raw)
		if tag.kind == kindInherit {
			parent, err := r.inherit(t, f, tag)
			if err != nil {
				return nil, err
			}
			d.Inherits = append(d.Inherits, parent.Type)
			d.Inherits = append(d.Inherits, parent.Inherits...)
			for _, pb := range parent.Fields {
				pb.Index = append([]int{i}, pb.Index...)
				inherited = append(inherited, pb)
			}
			continue
		}

		fb, err := r.bindField(t, f, tag)
		if err != nil {
			return nil, err
		}
		own = append(own, fb)
	}

	d.Fields, err = mergeBindings(t, inherited, own)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// mergeBindings flattens inherited and own bindings: ancestors first, own
// bindings replacing inherited ones of the same name.
func mergeBindings(t reflect.Type, inherited, own []FieldBinding) ([]FieldBinding, error) {
	ownNames := make(map[string]string, len(own))
	for _, fb := range own {
		if prev, dup := ownNames[fb.Name]; dup {
			return nil, &ConfigurationError{
				Type:   t,
				Field:  fb.Field,
				Reason: fmt.Sprintf("binding name %q is already used by field %s", fb.Name, prev),
			}
		}
		ownNames[fb.Name] = fb.Field
	}

	fields := make([]FieldBinding, 0, len(inherited)+len(own))
	seen := make(map[string]struct{}, len(inherited))
	for _, pb := range inherited {
		if _, overridden := ownNames[pb.Name]; overridden {
			continue
		}
		if _, dup := seen[pb.Name]; dup {
			continue
		}
		seen[pb.Name] = struct{}{}
		fields = append(fields, pb)
	}
	return append(fields, own...), nil
}

func (r *Registry) inherit(t reflect.Type, f reflect.StructField, tag fieldTag) (*TypeDescriptor, error) {
	if tag.name != "" || len(tag.flags) > 0 {
		return nil, &ConfigurationError{Type: t, Field: f.Name, Reason: "inherit takes no name or options"}
	}
	if !f.Anonymous || f.Type.Kind() != reflect.Struct {
		return nil, &ConfigurationError{Type: t, Field: f.Name, Reason: "inherit requires an embedded struct value"}
	}
	parent, err := r.Describe(f.Type)
	if err != nil {
		return nil, &ConfigurationError{Type: t, Field: f.Name, Reason: "cannot inherit bindings", Err: err}
	}
	return parent, nil
}

func (r *Registry) bindField(owner reflect.Type, f reflect.StructField, tag fieldTag) (FieldBinding, error) {
	fb := FieldBinding{
		Name:  tag.name,
		Field: f.Name,
		Index: slices.Clone(f.Index),
		Type:  f.Type,
		Owner: owner,
	}
	if fb.Name == "" {
		fb.Name = defaultName(f.Name)
	}
	fail := func(reason string, err error) (FieldBinding, error) {
		return FieldBinding{}, &ConfigurationError{Type: owner, Field: f.Name, Reason: reason, Err: err}
	}
	if len(tag.flags) > 0 {
		return fail(fmt.Sprintf("unknown binding options %s", strings.Join(tag.flags, ",")), nil)
	}

	_, hasDefault := f.Tag.Lookup(tagDefault)
	_, hasKey := f.Tag.Lookup(tagKey)
	_, hasDiscriminator := f.Tag.Lookup(tagDiscriminator)
	_, hasVariants := f.Tag.Lookup(tagVariants)

	switch tag.kind {
	case kindAttr:
		if hasKey || hasDiscriminator || hasVariants {
			return fail("scalar attributes take no key, discriminator or variants", nil)
		}
		if err := scalarBinding(&fb, f); err != nil {
			return fail("invalid scalar attribute", err)
		}
	case kindChild:
		if hasDefault || hasKey {
			return fail("child slots take no default or key", nil)
		}
		fb.Kind = KindChild
		if err := r.slotBinding(&fb, f, f.Type); err != nil {
			return fail("invalid child slot", err)
		}
	case kindMapped:
		if hasDefault {
			return fail("collections take no default", nil)
		}
		fb.Kind = KindCollection
		fb.Key = f.Tag.Get(tagKey)
		elem, err := collectionElem(&fb, f.Type)
		if err != nil {
			return fail("invalid collection", err)
		}
		if err := r.slotBinding(&fb, f, elem); err != nil {
			return fail("invalid collection", err)
		}
	case "":
		return fail("missing binding kind (attr, child, mapped or inherit)", nil)
	default:
		return fail(fmt.Sprintf("unknown binding kind %q", tag.kind), nil)
	}
	return fb, nil
}

func scalarBinding(fb *FieldBinding, f reflect.StructField) error {
	kind := classifyScalar(f.Type)
	if kind == scalarNone {
		return fmt.Errorf("%s cannot hold a scalar attribute", f.Type)
	}
	fb.Kind = KindScalar
	fb.scalar = kind

	lit, ok := f.Tag.Lookup(tagDefault)
	if !ok {
		return nil
	}
	if _, err := parseScalar(lit, f.Type, kind); err != nil {
		return fmt.Errorf("invalid default %q for %s: %w", lit, f.Type, err)
	}
	fb.Default = &lit
	return nil
}

// collectionElem validates a collection field's Go type and returns the type
// of its values.
func collectionElem(fb *FieldBinding, t reflect.Type) (reflect.Type, error) {
	if reflect.PointerTo(t).Implements(orderedSinkType) {
		fb.ordered = true
		fb.keyType = stringType
		fb.keyScalar = scalarString
		return reflect.New(t).Interface().(orderedSink).elemType(), nil
	}
	if t.Kind() != reflect.Map {
		return nil, fmt.Errorf("%s cannot hold a keyed collection; use binding.OrderedMap or a map", t)
	}
	fb.keyType = t.Key()
	fb.keyScalar = classifyScalar(fb.keyType)
	if fb.keyScalar == scalarNone {
		return nil, fmt.Errorf("map key type %s is not a scalar type", fb.keyType)
	}
	return t.Elem(), nil
}

// slotBinding resolves the candidate variants of a child or collection slot
// whose values have type elem.
func (r *Registry) slotBinding(fb *FieldBinding, f reflect.StructField, elem reflect.Type) error {
	var candidates []Variant
	switch {
	case elem.Kind() == reflect.Interface:
		fb.Base = elem
		candidates = r.variants[elem]
		if len(candidates) == 0 {
			return fmt.Errorf("no variants registered for %s", elem)
		}
	case elem.Kind() == reflect.Pointer && elem.Elem().Kind() == reflect.Struct:
		fb.Base = elem.Elem()
		meta, err := readMeta(fb.Base)
		if err != nil {
			return fmt.Errorf("invalid type marker on %s: %w", fb.Base, err)
		}
		candidates = []Variant{{Tag: meta.tag, Type: fb.Base}}
	default:
		return fmt.Errorf("%s is neither a pointer to a struct nor an interface", elem)
	}

	fb.Discriminator = f.Tag.Get(tagDiscriminator)
	subset, ok := f.Tag.Lookup(tagVariants)
	if !ok {
		fb.Variants = candidates
		return nil
	}
	for _, name := range strings.Split(subset, ",") {
		name = strings.TrimSpace(name)
		i := slices.IndexFunc(candidates, func(v Variant) bool { return v.Tag == name })
		if i < 0 {
			return fmt.Errorf("variant %q is not registered for %s (known: %s)",
				name, fb.Base, strings.Join(variantTags(candidates), ", "))
		}
		fb.Variants = append(fb.Variants, candidates[i])
	}
	return nil
}
