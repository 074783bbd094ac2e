// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxDepth bounds the nesting of trees a Registry will bind.
const DefaultMaxDepth = 256

// Registry holds the variant registrations of a domain and caches the type
// descriptors derived from it. A Registry is safe for concurrent use; its
// variant sets are fixed once NewRegistry returns.
type Registry struct {
	variants map[reflect.Type][]Variant
	maxDepth int

	descriptors sync.Map // reflect.Type -> *TypeDescriptor
	group       singleflight.Group
	flightKeys  sync.Map // reflect.Type -> string
	nextKey     atomic.Uint64
}

// Option configures a Registry.
type Option func(*Registry) error

// WithVariants registers the concrete struct types eligible for slots typed
// as the interface B. Candidates are given as values or pointers of the
// struct types, e.g. WithVariants[Employee](Cook{}, Waiter{}).
func WithVariants[B any](candidates ...any) Option {
	return func(r *Registry) error {
		return r.addVariants(reflect.TypeFor[B](), candidates)
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(r *Registry) error {
		if depth < 1 {
			return &ConfigurationError{Reason: fmt.Sprintf("max depth must be positive, got %d", depth)}
		}
		r.maxDepth = depth
		return nil
	}
}

// NewRegistry applies the options and eagerly describes every registered
// variant, so ambiguous or malformed registrations fail here rather than
// during a build.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		variants: make(map[reflect.Type][]Variant),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	for _, variants := range r.variants {
		for _, v := range variants {
			if _, err := r.Describe(v.Type); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It is intended for
// package-level registries whose declarations are fixed at compile time.
func MustNewRegistry(opts ...Option) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Variants returns the candidates registered for an interface base.
func (r *Registry) Variants(base reflect.Type) []Variant {
	return append([]Variant(nil), r.variants[base]...)
}

// MaxDepth reports the deepest tree the registry will bind.
func (r *Registry) MaxDepth() int { return r.maxDepth }

func (r *Registry) addVariants(base reflect.Type, candidates []any) error {
	if base.Kind() != reflect.Interface {
		return &ConfigurationError{Type: base, Reason: "variants can only be registered for interface types"}
	}
	existing := r.variants[base]
	for _, c := range candidates {
		t := reflect.TypeOf(c)
		if t == nil {
			return &ConfigurationError{Type: base, Reason: "nil variant candidate"}
		}
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return &ConfigurationError{Type: base, Reason: fmt.Sprintf("variant %s is not a struct type", t)}
		}
		if !reflect.PointerTo(t).Implements(base) {
			return &ConfigurationError{Type: base, Reason: fmt.Sprintf("*%s does not implement %s", t, base)}
		}
		meta, err := readMeta(t)
		if err != nil {
			return &ConfigurationError{Type: t, Reason: "invalid type marker", Err: err}
		}

		duplicate := false
		for _, v := range existing {
			if v.Type == t {
				duplicate = true
				break
			}
			if v.Tag == meta.tag {
				return &ConfigurationError{
					Type:   base,
					Reason: "conflicting variant registrations",
					Err:    &AmbiguousVariantError{Base: base, Tag: meta.tag, Types: []reflect.Type{v.Type, t}},
				}
			}
		}
		if !duplicate {
			existing = append(existing, Variant{Tag: meta.tag, Type: t})
		}
	}
	r.variants[base] = existing
	return nil
}

// Describe returns the descriptor of a struct type (T or *T). The result is
// computed once per type and cached for the registry's lifetime.
func (r *Registry) Describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil {
		return nil, &ConfigurationError{Reason: "cannot describe a nil type"}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &ConfigurationError{Type: t, Reason: "only struct types can be bound"}
	}
	if d, ok := r.descriptors.Load(t); ok {
		return d.(*TypeDescriptor), nil
	}

	v, err, _ := r.group.Do(r.flightKey(t), func() (any, error) {
		if d, ok := r.descriptors.Load(t); ok {
			return d, nil
		}
		d, err := r.describe(t)
		if err != nil {
			return nil, err
		}
		r.descriptors.Store(t, d)
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TypeDescriptor), nil
}

// flightKey names t in the single-flight group. Type names are not unique
// (two function-local types may share one), so keys are handed out per
// reflect.Type instead.
func (r *Registry) flightKey(t reflect.Type) string {
	if k, ok := r.flightKeys.Load(t); ok {
		return k.(string)
	}
	k, _ := r.flightKeys.LoadOrStore(t, strconv.FormatUint(r.nextKey.Add(1), 10))
	return k.(string)
}
