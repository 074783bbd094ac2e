// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ErrMaxDepth is returned when a tree is deeper than the registry allows.
var ErrMaxDepth = errors.New("maximum tree depth exceeded")

// ConfigurationError reports a static mis-declaration: a bad default literal,
// a field whose Go type does not fit its binding kind, an ambiguous variant
// registration or single-child slot, or a collection child without its key.
type ConfigurationError struct {
	Type   reflect.Type
	Field  string
	Node   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration error")
	if e.Type != nil {
		fmt.Fprintf(&sb, " in %s", e.Type)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " field %s", e.Field)
	}
	if e.Node != "" {
		fmt.Fprintf(&sb, " at %s", e.Node)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CoercionError reports a raw attribute value that cannot be parsed as the
// field's declared type.
type CoercionError struct {
	Field  string
	Node   string
	Raw    string
	Target reflect.Type
	Err    error
}

func (e *CoercionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cannot coerce %q to %s", e.Raw, e.Target)
	if e.Field != "" {
		fmt.Fprintf(&sb, " for %s", e.Field)
	}
	if e.Node != "" {
		fmt.Fprintf(&sb, " at %s", e.Node)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *CoercionError) Unwrap() error { return e.Err }

// UnknownVariantError reports a node whose tag matches none of the candidate
// types of the slots it could fill.
type UnknownVariantError struct {
	Node       string
	Tag        string
	Candidates []string
}

func (e *UnknownVariantError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("unknown variant %q at %s: the parent declares no child slots", e.Tag, e.Node)
	}
	return fmt.Sprintf("unknown variant %q at %s: expected one of [%s]", e.Tag, e.Node, strings.Join(e.Candidates, ", "))
}

// AmbiguousVariantError reports two candidate types registered for the same
// base with the same discriminator.
type AmbiguousVariantError struct {
	Base  reflect.Type
	Tag   string
	Types []reflect.Type
}

func (e *AmbiguousVariantError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.String()
	}
	sort.Strings(names)
	return fmt.Sprintf("ambiguous variant %q for %s: claimed by %s", e.Tag, e.Base, strings.Join(names, ", "))
}
