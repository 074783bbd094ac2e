// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package binding

import (
	"slices"

	"github.com/vk/brewmaster/internal/tree"
)

// selector returns the value the slot discriminates n by: its tag, or the
// slot's discriminator attribute when one is declared.
func (fb *FieldBinding) selector(n tree.Node) (string, bool) {
	if fb.Discriminator == "" {
		return n.Name(), true
	}
	return n.Attribute(fb.Discriminator)
}

// match reports the variant n selects in the slot, if any.
func (fb *FieldBinding) match(n tree.Node) (Variant, bool) {
	sel, ok := fb.selector(n)
	if !ok {
		return Variant{}, false
	}
	return lookupVariant(sel, fb.Variants)
}

func lookupVariant(tag string, candidates []Variant) (Variant, bool) {
	i := slices.IndexFunc(candidates, func(v Variant) bool { return v.Tag == tag })
	if i < 0 {
		return Variant{}, false
	}
	return candidates[i], true
}

// resolve picks the candidate whose discriminator equals tag.
func resolve(tag, node string, candidates []Variant) (Variant, error) {
	if v, ok := lookupVariant(tag, candidates); ok {
		return v, nil
	}
	tags := variantTags(candidates)
	slices.Sort(tags)
	return Variant{}, &UnknownVariantError{Node: node, Tag: tag, Candidates: tags}
}
