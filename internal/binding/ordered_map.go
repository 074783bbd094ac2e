// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"iter"
	"reflect"
)

// OrderedMap is a string-keyed map that remembers the order in which keys were
// first inserted. Setting an existing key replaces its value in place. The
// zero value is an empty map ready to use.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// Set stores v under key.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.items == nil {
		m.items = make(map[string]V)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int { return len(m.keys) }

// Keys returns the keys in first-insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Values returns the values in key order.
func (m *OrderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

// All iterates over the entries in key order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// orderedSink lets the builder fill an OrderedMap of any value type through
// reflection.
type orderedSink interface {
	reset()
	has(key string) bool
	put(key string, v any)
	elemType() reflect.Type
}

var orderedSinkType = reflect.TypeFor[orderedSink]()

func (m *OrderedMap[V]) reset() {
	m.keys = nil
	m.items = make(map[string]V)
}

func (m *OrderedMap[V]) has(key string) bool {
	_, ok := m.items[key]
	return ok
}

func (m *OrderedMap[V]) put(key string, v any) { m.Set(key, v.(V)) }

func (m *OrderedMap[V]) elemType() reflect.Type { return reflect.TypeFor[V]() }
