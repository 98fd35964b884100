// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decorate turns declared fields into the concrete field
// descriptors every generation pass consumes.
//
// A [Descriptor] records the field's base category (integer, float,
// reference, nested sequence, raw buffer, index, padding, nested value)
// and the modifiers layered on top of it. Modifiers compose in a fixed
// order regardless of the base: flagged wraps the base in a
// presence-flagged integer carrier, compound embeds a nested value by
// native-endian composition, bounds wraps the result in a
// (minimum, maximum) pair, and a count above one makes the whole thing a
// fixed-size inline array.
//
// [Engine.Flatten] builds a record's flattened field list: every
// ancestor's declared fields, root-most first, then the record's own.
// Padding and sequences of the host-managed PredictedResource record are
// left out of the flattened list.
package decorate

import (
	"fmt"

	"github.com/bureau-foundation/tagforge/lib/definition"
)

// ValueClass says what a nested value field names.
type ValueClass int

const (
	// ValueExternal is a type defined outside the schema (vectors,
	// colors, angles).
	ValueExternal ValueClass = iota
	ValueEnum
	ValueBitfield
	ValueRecord
)

func (c ValueClass) String() string {
	switch c {
	case ValueExternal:
		return "external"
	case ValueEnum:
		return "enum"
	case ValueBitfield:
		return "bitfield"
	case ValueRecord:
		return "record"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Descriptor is a decorated field.
type Descriptor struct {
	Field *definition.Field

	// Owner is the record that declared the field. For inherited
	// fields this is the ancestor, not the record being flattened.
	Owner string

	Kind definition.FieldKind

	// Bits and Signed describe integer fields.
	Bits   int
	Signed bool

	// Classes is the (already expanded) allowed-class list of a
	// reference.
	Classes []string

	// Target is the record named by a sequence or index, or the type
	// named by a nested value.
	Target string

	// ValueClass classifies Target for nested values.
	ValueClass ValueClass

	Flagged  bool
	Compound bool
	Bounds   bool

	// Count is the inline array arity; 1 for scalars.
	Count int

	// ElementType is the rendered type of one element, with every
	// modifier except the array applied.
	ElementType string

	// PaddingSize is the byte size of padding descriptors.
	PaddingSize int
}

// Member returns the generated member identifier.
func (d *Descriptor) Member() string {
	return d.Field.MemberName
}

// Name returns the declared field name.
func (d *Descriptor) Name() string {
	return d.Field.Name
}

// IsArray reports whether the field is a fixed-size inline array.
func (d *Descriptor) IsArray() bool {
	return d.Count > 1
}

// Declarator renders the member declaration without a trailing
// semicolon, e.g. "float ready_time" or "HEK::Point3D points[4]".
func (d *Descriptor) Declarator() string {
	if d.IsArray() {
		return fmt.Sprintf("%s %s[%d]", d.ElementType, d.Member(), d.Count)
	}
	return fmt.Sprintf("%s %s", d.ElementType, d.Member())
}

// Engine decorates fields against one catalog.
type Engine struct {
	catalog   *definition.Catalog
	namespace string
}

// NewEngine returns an engine that resolves nested value names against
// catalog and qualifies schema types with namespace ("HEK" when empty).
func NewEngine(catalog *definition.Catalog, namespace string) *Engine {
	if namespace == "" {
		namespace = "HEK"
	}
	return &Engine{catalog: catalog, namespace: namespace}
}

// Namespace returns the namespace schema types are qualified with.
func (e *Engine) Namespace() string {
	return e.namespace
}

// Decorate resolves one field declared by owner.
func (e *Engine) Decorate(owner string, field *definition.Field) Descriptor {
	descriptor := Descriptor{
		Field:    field,
		Owner:    owner,
		Kind:     field.Kind(),
		Flagged:  field.Flagged,
		Compound: field.Compound,
		Bounds:   field.Bounds,
		Count:    field.Arity(),
	}

	// Primitive carriers are rendered natively; compound embedding only
	// applies to schema-defined types.
	native := true
	var base string
	switch descriptor.Kind {
	case definition.FieldInteger:
		descriptor.Bits, descriptor.Signed, _ = definition.IntegerType(field.Type)
		base = fmt.Sprintf("std::%s_t", field.Type)
	case definition.FieldFloat:
		base = "float"
	case definition.FieldReference:
		descriptor.Classes = append([]string(nil), field.Classes...)
		base = "Dependency"
	case definition.FieldSequence:
		descriptor.Target = field.Struct
		base = fmt.Sprintf("std::vector<%s>", field.Struct)
	case definition.FieldRawBuffer:
		base = "std::vector<std::byte>"
	case definition.FieldPadding:
		descriptor.PaddingSize = field.Size
		descriptor.Count = 1
		return descriptor
	case definition.FieldIndex:
		descriptor.Target = field.Struct
		native = false
		base = e.qualify(field.Type)
	default:
		descriptor.Target = field.Type
		descriptor.ValueClass = e.classify(field.Type)
		native = false
		base = e.qualify(field.Type)
	}

	if descriptor.Flagged {
		base = fmt.Sprintf("%s::FlaggedInt<%s>", e.namespace, base)
	}
	if descriptor.Compound && !native {
		base = fmt.Sprintf("%s<%s::NativeEndian>", base, e.namespace)
	}
	if descriptor.Bounds {
		base = fmt.Sprintf("%s::Bounds<%s>", e.namespace, base)
	}
	descriptor.ElementType = base
	return descriptor
}

func (e *Engine) qualify(name string) string {
	return e.namespace + "::" + name
}

func (e *Engine) classify(name string) ValueClass {
	if _, ok := e.catalog.Enum(name); ok {
		return ValueEnum
	}
	if _, ok := e.catalog.Bitfield(name); ok {
		return ValueBitfield
	}
	if _, ok := e.catalog.Record(name); ok {
		return ValueRecord
	}
	return ValueExternal
}

// Declared decorates the record's own fields, padding included, in
// declaration order. Used for byte layouts.
func (e *Engine) Declared(record *definition.Record) []Descriptor {
	descriptors := make([]Descriptor, 0, len(record.Fields))
	for index := range record.Fields {
		descriptors = append(descriptors, e.Decorate(record.Name, &record.Fields[index]))
	}
	return descriptors
}

// Flatten returns the record's flattened field list. See the package
// documentation for what is excluded.
func (e *Engine) Flatten(record *definition.Record) []Descriptor {
	var flattened []Descriptor
	chain := append(e.catalog.Ancestors(record), record)
	for _, declaring := range chain {
		for index := range declaring.Fields {
			field := &declaring.Fields[index]
			switch field.Kind() {
			case definition.FieldPadding:
				continue
			case definition.FieldSequence:
				if field.Struct == definition.PredictedResource {
					continue
				}
			}
			flattened = append(flattened, e.Decorate(declaring.Name, field))
		}
	}
	return flattened
}
