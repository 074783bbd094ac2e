// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"reflect"
	"sort"
)

// BindingKind is the role a field plays in binding.
type BindingKind int

const (
	// KindScalar binds a named attribute coerced to the field's type.
	KindScalar BindingKind = iota
	// KindChild binds exactly one nested object.
	KindChild
	// KindCollection binds a keyed mapping of nested objects.
	KindCollection
)

func (k BindingKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindChild:
		return "child"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Variant is a concrete struct type eligible for a polymorphic slot,
// selected by its discriminator tag.
type Variant struct {
	Tag  string
	Type reflect.Type
}

// FieldBinding describes how one Go field is populated.
type FieldBinding struct {
	Kind  BindingKind
	Name  string
	Field string
	Index []int
	Type  reflect.Type
	Owner reflect.Type

	// Scalar bindings.
	Default *string
	scalar  scalarKind

	// Child and collection bindings.
	Base          reflect.Type
	Variants      []Variant
	Discriminator string

	// Collection bindings.
	Key       string
	ordered   bool
	keyType   reflect.Type
	keyScalar scalarKind
}

// TypeDescriptor is the immutable, inheritance-flattened binding set of a
// struct type.
type TypeDescriptor struct {
	Type      reflect.Type
	Tag       string
	Singleton bool
	// Inherits lists every ancestor whose bindings were merged, nearest first.
	Inherits []reflect.Type
	Fields   []FieldBinding
}

// Binding returns the effective binding with the given name.
func (d *TypeDescriptor) Binding(name string) (FieldBinding, bool) {
	for _, fb := range d.Fields {
		if fb.Name == name {
			return fb, true
		}
	}
	return FieldBinding{}, false
}

// slotTags lists the discriminators accepted by the type's child and
// collection slots, sorted and de-duplicated.
func (d *TypeDescriptor) slotTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, fb := range d.Fields {
		if fb.Kind == KindScalar {
			continue
		}
		for _, v := range fb.Variants {
			if _, ok := seen[v.Tag]; ok {
				continue
			}
			seen[v.Tag] = struct{}{}
			tags = append(tags, v.Tag)
		}
	}
	sort.Strings(tags)
	return tags
}

func variantTags(variants []Variant) []string {
	tags := make([]string, len(variants))
	for i, v := range variants {
		tags[i] = v.Tag
	}
	return tags
}
