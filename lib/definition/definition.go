// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PredictedResource is the sentinel record name: a host-managed built-in
// that has no schema declaration. It is tolerated as a dependency target
// and sequence fields targeting it are omitted from generated members.
const PredictedResource = "PredictedResource"

// Declaration kinds as written in the "type" key of a top-level object.
const (
	KindEnum     = "enum"
	KindBitfield = "bitfield"
	KindStruct   = "struct"
)

// Field type tokens with special meaning. Integer tokens are "int8" to
// "uint64"; any token not listed here and not an integer names a nested
// value type.
const (
	TypeFloat     = "float"
	TypeReference = "TagDependency"
	TypeSequence  = "TagReflexive"
	TypeRawBuffer = "TagDataOffset"
	TypeIndex     = "Index"
	TypePadding   = "pad"
)

// Enum is an enumeration declaration.
type Enum struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
	Comment string   `json:"comment,omitempty"`

	// FormattedOptions holds the normalized identifier for each entry in
	// Options, index-aligned. Filled in by the loader.
	FormattedOptions []string `json:"-"`

	// Document is the base name of the schema document that declared
	// this enum.
	Document string `json:"-"`
}

// Bitfield is a bitfield declaration. Width is the storage width in bits
// (8, 16, or 32); zero means 32.
type Bitfield struct {
	Name    string   `json:"name"`
	Width   int      `json:"width,omitempty"`
	Fields  []string `json:"fields"`
	Comment string   `json:"comment,omitempty"`

	// FormattedFields holds the normalized identifier for each entry in
	// Fields, index-aligned. Filled in by the loader.
	FormattedFields []string `json:"-"`

	Document string `json:"-"`
}

// StorageWidth returns Width, defaulting to 32.
func (b *Bitfield) StorageWidth() int {
	if b.Width == 0 {
		return 32
	}
	return b.Width
}

// Capabilities are the optional hooks a record opts into. Each flag makes
// the generation passes emit a call to (and a declaration of) a
// hand-written method on the generated type.
type Capabilities struct {
	PostCacheDeformat  bool `json:"post_cache_deformat,omitempty"`
	PostCacheParse     bool `json:"post_cache_parse,omitempty"`
	PreCompile         bool `json:"pre_compile,omitempty"`
	PostCompile        bool `json:"post_compile,omitempty"`
	PostprocessHEKData bool `json:"postprocess_hek_data,omitempty"`
	ReadOnly           bool `json:"read_only,omitempty"`
}

// Record is a structured record ("struct") declaration.
type Record struct {
	Name     string  `json:"name"`
	Inherits string  `json:"inherits,omitempty"`
	Fields   []Field `json:"fields"`

	// Size is the declared compiled size in bytes, or zero when the
	// schema does not state it.
	Size  int    `json:"size,omitempty"`
	Title string `json:"title,omitempty"`

	Capabilities

	Document string `json:"-"`
}

// Field is one declared member of a record.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`

	// MemberName is the normalized identifier for Name. Empty for
	// padding. Filled in by the loader.
	MemberName string `json:"-"`

	// Count is the inline array arity; zero and one both mean scalar.
	Count     int  `json:"count,omitempty"`
	Flagged   bool `json:"flagged,omitempty"`
	Bounds    bool `json:"bounds,omitempty"`
	Compound  bool `json:"compound,omitempty"`
	CacheOnly bool `json:"cache_only,omitempty"`

	// Default is the raw JSON of the "default" key. A present key
	// (even null) yields a non-empty value.
	Default json.RawMessage `json:"default,omitempty"`

	// Classes is the allowed reference target set of a TagDependency.
	Classes []string `json:"classes,omitempty"`

	// Struct names the target record of a TagReflexive or Index.
	Struct string `json:"struct,omitempty"`

	// Reflexive names the sibling sequence member whose element count
	// bounds an Index.
	Reflexive string `json:"reflexive,omitempty"`

	// Size is the byte size of padding.
	Size int `json:"size,omitempty"`

	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	NonNull  bool   `json:"non_null,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
	ReadOnly bool   `json:"read_only,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// FieldKind classifies a field type token.
type FieldKind int

const (
	FieldInteger FieldKind = iota
	FieldFloat
	FieldReference
	FieldSequence
	FieldRawBuffer
	FieldIndex
	FieldPadding
	FieldValue
)

func (k FieldKind) String() string {
	switch k {
	case FieldInteger:
		return "integer"
	case FieldFloat:
		return "float"
	case FieldReference:
		return "reference"
	case FieldSequence:
		return "sequence"
	case FieldRawBuffer:
		return "raw_buffer"
	case FieldIndex:
		return "index"
	case FieldPadding:
		return "padding"
	case FieldValue:
		return "value"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Kind classifies the field's type token.
func (f *Field) Kind() FieldKind {
	if _, _, ok := IntegerType(f.Type); ok {
		return FieldInteger
	}
	switch f.Type {
	case TypeFloat:
		return FieldFloat
	case TypeReference:
		return FieldReference
	case TypeSequence:
		return FieldSequence
	case TypeRawBuffer:
		return FieldRawBuffer
	case TypeIndex:
		return FieldIndex
	case TypePadding:
		return FieldPadding
	default:
		return FieldValue
	}
}

// HasDefault reports whether the field declared a "default" key.
func (f *Field) HasDefault() bool {
	return len(f.Default) > 0
}

// DefaultValues returns the declared default as a list of numeric
// literals. A scalar default yields one element; an array default
// yields one element per entry. A null default yields nil.
func (f *Field) DefaultValues() ([]json.Number, error) {
	if !f.HasDefault() {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(f.Default))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("field %q: parsing default: %w", f.Name, err)
	}
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case json.Number:
		return []json.Number{typed}, nil
	case []any:
		values := make([]json.Number, 0, len(typed))
		for _, element := range typed {
			number, ok := element.(json.Number)
			if !ok {
				return nil, fmt.Errorf("field %q: default element %v is not a number", f.Name, element)
			}
			values = append(values, number)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("field %q: default must be a number or an array of numbers", f.Name)
	}
}

// Arity returns the inline array arity, treating zero as one.
func (f *Field) Arity() int {
	if f.Count <= 1 {
		return 1
	}
	return f.Count
}

// IntegerType parses an integer type token ("int8" ... "uint64").
func IntegerType(token string) (bits int, signed bool, ok bool) {
	switch token {
	case "int8":
		return 8, true, true
	case "int16":
		return 16, true, true
	case "int32":
		return 32, true, true
	case "int64":
		return 64, true, true
	case "uint8":
		return 8, false, true
	case "uint16":
		return 16, false, true
	case "uint32":
		return 32, false, true
	case "uint64":
		return 64, false, true
	}
	return 0, false, false
}
