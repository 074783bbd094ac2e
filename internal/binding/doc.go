// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package binding populates a strongly-typed object graph from a generic
// attributed tree (see package tree), driven by metadata declared on the
// target Go types.
//
// # Declaring bindings
//
// Bindings are declared with struct tags. The `brew` tag follows the
// `name,kind` grammar familiar from gohcl:
//
//	type Waiter struct {
//		AbstractEmployee `brew:",inherit"`
//		Tips float64 `brew:"tips,attr" default:"0.0"`
//	}
//
//	type EmployeeDirector struct {
//		binding.Meta `brew:"Employees,singleton"`
//		Employees  binding.OrderedMap[Employee] `brew:"employees,mapped" key:"name"`
//		Programmer *FunctionalProgrammer        `brew:"programmer,child"`
//	}
//
// The kinds are:
//
//   - attr: a scalar attribute, coerced from its raw string. An optional
//     `default` tag supplies a literal used when the attribute is absent.
//   - child: a single nested object. The field is a pointer to a struct or an
//     interface with registered variants.
//   - mapped: a keyed collection of nested objects, either an OrderedMap or a
//     plain Go map. The optional `key` tag names the attribute of each child
//     that supplies the key; without it the child's tag is the key.
//   - inherit: placed on an embedded struct, it makes the embedding type
//     include every binding of the embedded one (and, transitively, of its own
//     inherited ancestors). Bindings of the embedding type win on name
//     collisions.
//
// Child and mapped fields may also carry `discriminator:"attr"` to select
// variants by an attribute value instead of the node's tag, and
// `variants:"A,B"` to narrow the registered candidate set.
//
// Type-level markers live on an embedded Meta field. Its tag name overrides
// the type's discriminator (by default the Go type name) and the singleton
// flag makes the binder construct at most one instance of the type per build.
//
// # Polymorphism
//
// Go has no subclassing, so a polymorphic slot is typed as an interface and
// its candidate concrete types are registered once on the Registry with
// WithVariants. Two candidates sharing a discriminator are rejected when the
// registry is created.
//
// # Building
//
// Build resolves, constructs and binds the whole graph in one synchronous
// call. Descriptors are computed once per type and shared by concurrent
// builds; singleton instances are scoped to a single build. A failed build
// never returns a partial graph.
package binding
