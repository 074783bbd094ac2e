// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// scalarKind classifies the Go types a raw attribute string can be coerced to.
type scalarKind int

const (
	scalarNone scalarKind = iota
	scalarString
	scalarBool
	scalarNumber
	scalarDuration
	scalarText
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func classifyScalar(t reflect.Type) scalarKind {
	if t == durationType {
		return scalarDuration
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return scalarText
	}
	switch t.Kind() {
	case reflect.String:
		return scalarString
	case reflect.Bool:
		return scalarBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return scalarNumber
	default:
		return scalarNone
	}
}

// parseScalar converts raw into a value of type t. Numbers and booleans go
// through cty's string conversions so that the accepted literal syntax is the
// same as in HCL.
func parseScalar(raw string, t reflect.Type, kind scalarKind) (reflect.Value, error) {
	out := reflect.New(t)
	switch kind {
	case scalarString:
		out.Elem().SetString(raw)
	case scalarDuration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, err
		}
		out.Elem().SetInt(int64(d))
	case scalarText:
		if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}
	case scalarBool, scalarNumber:
		target := cty.Number
		if kind == scalarBool {
			target = cty.Bool
		}
		val, err := convert.Convert(cty.StringVal(strings.TrimSpace(raw)), target)
		if err != nil {
			return reflect.Value{}, err
		}
		if err := gocty.FromCtyValue(val, out.Interface()); err != nil {
			return reflect.Value{}, err
		}
	default:
		return reflect.Value{}, fmt.Errorf("%s is not a scalar type", t)
	}
	return out.Elem(), nil
}

// coerce produces the value of a scalar binding. A present raw value that
// fails to parse is an error; the default only applies when raw is absent.
// Defaults are parsed on every use so no two instances share the storage of
// a reference-typed value such as net.IP.
func coerce(raw *string, fb *FieldBinding, node string) (reflect.Value, error) {
	lit := raw
	if lit == nil {
		lit = fb.Default
	}
	if lit == nil {
		return reflect.Zero(fb.Type), nil
	}
	v, err := parseScalar(*lit, fb.Type, fb.scalar)
	if err != nil {
		return reflect.Value{}, &CoercionError{Field: fb.Name, Node: node, Raw: *lit, Target: fb.Type, Err: err}
	}
	return v, nil
}

// Coerce converts raw to a value of type T with the same rules used for
// scalar attributes. It is exported for loaders and tools that need to
// validate literals outside of a build.
func Coerce[T any](raw string) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	kind := classifyScalar(t)
	if kind == scalarNone {
		return zero, fmt.Errorf("%s is not a scalar type", t)
	}
	v, err := parseScalar(raw, t, kind)
	if err != nil {
		return zero, &CoercionError{Raw: raw, Target: t, Err: err}
	}
	return v.Interface().(T), nil
}
