// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package classhierarchy expands abstract tag classes in a reference
// field's allowed-class list into their concrete subclasses.
//
// Expansion is a fixed, ordered list of [Rule] values applied once each
// to a caller-owned [Set]. A rule scans the current contents of the set
// for its superclass and, if present, adds the subclasses. Later rules see
// what earlier rules added ("object" adds "unit" and "item", which the
// "unit" and "item" rules then expand), but no rule runs twice: this is a
// one-directional pass in list order, not a fixed-point closure. A
// superclass introduced only by a rule that comes after its own rule in
// the list is left unexpanded.
package classhierarchy

import "github.com/bureau-foundation/tagforge/lib/definition"

// Set is an ordered set of tag class names. Insertion order is kept so
// generated class lists are deterministic.
type Set struct {
	classes []string
	members map[string]struct{}
}

// NewSet returns a set holding classes in order, duplicates dropped.
func NewSet(classes []string) *Set {
	set := &Set{members: make(map[string]struct{}, len(classes))}
	for _, class := range classes {
		set.Add(class)
	}
	return set
}

// Add appends class if it is not already present.
func (s *Set) Add(class string) {
	if _, exists := s.members[class]; exists {
		return
	}
	s.members[class] = struct{}{}
	s.classes = append(s.classes, class)
}

// Contains reports whether class is in the set.
func (s *Set) Contains(class string) bool {
	_, exists := s.members[class]
	return exists
}

// Classes returns the set contents in insertion order. The returned
// slice is a copy.
func (s *Set) Classes() []string {
	return append([]string(nil), s.classes...)
}

// Rule mutates a class set in place.
type Rule func(set *Set)

// Expand returns a rule that adds subclasses to the set when superclass
// is present at the time the rule runs.
func Expand(superclass string, subclasses ...string) Rule {
	return func(set *Set) {
		if !set.Contains(superclass) {
			return
		}
		for _, subclass := range subclasses {
			set.Add(subclass)
		}
	}
}

// DefaultRules returns the tag class hierarchy in application order. The
// order is significant; see the package documentation.
func DefaultRules() []Rule {
	return []Rule{
		Expand("object", "unit", "device", "item", "projectile", "scenery", "sound_scenery"),
		Expand("unit", "vehicle", "biped"),
		Expand("bitmap", "extended_bitmap"),
		Expand("sound", "extended_sound"),
		Expand("item", "weapon", "garbage", "equipment"),
		Expand("shader",
			"shader_environment",
			"shader_model",
			"shader_transparent_chicago",
			"shader_transparent_chicago_extended",
			"shader_transparent_glass",
			"shader_transparent_meter",
			"shader_transparent_plasma",
			"shader_transparent_water",
			"shader_transparent_generic",
		),
		Expand("device", "device_control", "device_light_fixture", "device_machine"),
	}
}

// Expander applies an ordered rule list.
type Expander struct {
	rules []Rule
}

// NewExpander returns an expander over rules. A nil slice uses
// [DefaultRules].
func NewExpander(rules []Rule) *Expander {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Expander{rules: rules}
}

// Expand applies every rule once, in order, to a set built from classes
// and returns the result.
func (e *Expander) Expand(classes []string) []string {
	set := NewSet(classes)
	for _, rule := range e.rules {
		rule(set)
	}
	return set.Classes()
}

// ExpandCatalog rewrites the Classes of every reference field of every
// record in catalog. Returns the number of fields rewritten.
func (e *Expander) ExpandCatalog(catalog *definition.Catalog) int {
	expanded := 0
	for _, record := range catalog.Records {
		for index := range record.Fields {
			field := &record.Fields[index]
			if field.Kind() != definition.FieldReference {
				continue
			}
			field.Classes = e.Expand(field.Classes)
			expanded++
		}
	}
	return expanded
}
