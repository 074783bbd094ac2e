// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import "reflect"

// identity scopes singleton instances to a single build.
type identity struct {
	instances map[reflect.Type]reflect.Value
}

func newIdentity() *identity {
	return &identity{instances: make(map[reflect.Type]reflect.Value)}
}

// getOrCreate returns the instance already built for a singleton type, or
// calls factory. Singleton results are only remembered once factory
// succeeds, i.e. after the instance is fully bound.
func (id *identity) getOrCreate(d *TypeDescriptor, factory func() (reflect.Value, error)) (inst reflect.Value, reused bool, err error) {
	if !d.Singleton {
		inst, err = factory()
		return inst, false, err
	}
	if inst, ok := id.instances[d.Type]; ok {
		return inst, true, nil
	}
	inst, err = factory()
	if err != nil {
		return reflect.Value{}, false, err
	}
	id.instances[d.Type] = inst
	return inst, false, nil
}
