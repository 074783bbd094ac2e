// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Meta carries type-level markers in its struct tag. Embed it in a target
// type:
//
//	binding.Meta `brew:"Employees,singleton"`
type Meta struct{}

var metaType = reflect.TypeFor[Meta]()

// Struct tag keys.
const (
	tagBinding       = "brew"
	tagDefault       = "default"
	tagKey           = "key"
	tagDiscriminator = "discriminator"
	tagVariants      = "variants"
)

// Binding kinds as spelled in the brew tag.
const (
	kindAttr    = "attr"
	kindChild   = "child"
	kindMapped  = "mapped"
	kindInherit = "inherit"

	flagSingleton = "singleton"
)

// fieldTag is the parsed form of a `brew:"name,kind,flags..."` tag.
type fieldTag struct {
	name  string
	kind  string
	flags []string
}

func parseTag(raw string) fieldTag {
	parts := strings.Split(raw, ",")
	tag := fieldTag{name: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		tag.kind = strings.TrimSpace(parts[1])
	}
	for _, p := range parts[min(len(parts), 2):] {
		if p = strings.TrimSpace(p); p != "" {
			tag.flags = append(tag.flags, p)
		}
	}
	return tag
}

// typeMeta is what an embedded Meta field declares.
type typeMeta struct {
	tag       string
	singleton bool
}

// readMeta finds the embedded Meta field of a struct type, if any.
func readMeta(t reflect.Type) (typeMeta, error) {
	meta := typeMeta{tag: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type != metaType {
			continue
		}
		if !f.Anonymous {
			return meta, fmt.Errorf("binding.Meta must be embedded, found named field %s", f.Name)
		}
		raw := f.Tag.Get(tagBinding)
		if raw == "" {
			return meta, nil
		}
		parts := strings.Split(raw, ",")
		if name := strings.TrimSpace(parts[0]); name != "" {
			meta.tag = name
		}
		for _, flag := range parts[1:] {
			switch strings.TrimSpace(flag) {
			case flagSingleton:
				meta.singleton = true
			case "":
			default:
				return meta, fmt.Errorf("unknown type marker %q", flag)
			}
		}
		return meta, nil
	}
	return meta, nil
}

// discriminatorOf returns the tag a struct type is selected by.
func discriminatorOf(t reflect.Type) string {
	meta, err := readMeta(t)
	if err != nil {
		return t.Name()
	}
	return meta.tag
}

// defaultName derives a binding name from a Go field name: Catchphrase
// becomes catchphrase.
func defaultName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}
