// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/identifier"
)

// ParserStruct emits the reflective descriptor tools use to list and
// edit a record's members by name.
type ParserStruct struct{}

func (ParserStruct) Name() string { return "parser_struct" }

func (ParserStruct) Emit(c *Context, unit *Unit) {
	name := c.Name()
	title, hasTitle := c.titleMember()

	d := unit.Declaration
	d.Line("std::vector<ParserStructValue> get_values() override;")
	d.Line("const char *struct_name() const override;")
	d.Line("bool has_title() const override;")
	if hasTitle {
		d.Line("const char *title() const override;")
	}

	s := unit.Definition
	s.Block("std::vector<ParserStructValue> %s::get_values()", name)
	s.Line("std::vector<ParserStructValue> values;")
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		if descriptor.Field.Hidden && !c.ExtractHidden {
			continue
		}
		if descriptor.Field.CacheOnly {
			continue
		}
		c.emitValue(s, descriptor)
	}
	s.Line("return values;")
	s.EndBlock()
	s.Blank()

	s.Block("const char *%s::struct_name() const", name)
	s.Line("return %s;", cString(name))
	s.EndBlock()
	s.Blank()

	s.Block("bool %s::has_title() const", name)
	s.Line("return %t;", hasTitle)
	s.EndBlock()
	s.Blank()

	if hasTitle {
		s.Block("const char *%s::title() const", name)
		s.Line("return ParserStruct::title_of(this->%s);", title.Member())
		s.EndBlock()
		s.Blank()
	}
}

// titleMember resolves the record's title to a flattened member.
func (c *Context) titleMember() (*decorate.Descriptor, bool) {
	if c.Record.Title == "" {
		return nil, false
	}
	return c.member(identifier.Member(c.Record.Title))
}

func (c *Context) emitValue(s *Stream, descriptor *decorate.Descriptor) {
	field := descriptor.Field
	s.Block("values.push_back(ParserStructValue")
	s.Line(".name = %s,", cString(field.Name))
	s.Line(".member_name = %s,", cString(descriptor.Member()))
	if field.Comment != "" {
		s.Line(".comment = %s,", cString(field.Comment))
	}
	if field.Unit != "" {
		s.Line(".unit = %s,", cString(field.Unit))
	}
	s.Line(".type = ParserStructValue::%s,", valueType(descriptor))
	s.Line(".address = &this->%s,", descriptor.Member())
	if descriptor.IsArray() {
		s.Line(".count = %d,", descriptor.Count)
	}
	if descriptor.Bounds {
		s.Line(".bounds = true,")
	}
	if descriptor.Kind == definition.FieldValue && (descriptor.ValueClass == decorate.ValueEnum || descriptor.ValueClass == decorate.ValueBitfield) {
		s.Line(".options = %s::%s_names(),", c.HEK(), descriptor.Target)
	}
	if descriptor.Kind == definition.FieldReference && len(descriptor.Classes) > 0 {
		classes := make([]string, len(descriptor.Classes))
		for index, class := range descriptor.Classes {
			classes[index] = fourCC(class)
		}
		s.Line(".classes = { %s },", strings.Join(classes, ", "))
	}
	if field.ReadOnly || c.Capabilities().ReadOnly {
		s.Line(".read_only = true,")
	}
	s.EndBlockSuffix(");")
}

// valueType names the ParserStructValue type constant for a member.
func valueType(descriptor *decorate.Descriptor) string {
	switch descriptor.Kind {
	case definition.FieldInteger:
		return "VALUE_TYPE_" + strings.ToUpper(descriptor.Field.Type)
	case definition.FieldFloat:
		return "VALUE_TYPE_FLOAT"
	case definition.FieldReference:
		return "VALUE_TYPE_DEPENDENCY"
	case definition.FieldSequence:
		return "VALUE_TYPE_REFLEXIVE"
	case definition.FieldRawBuffer:
		return "VALUE_TYPE_TAGDATAOFFSET"
	case definition.FieldIndex:
		return "VALUE_TYPE_INDEX"
	}
	switch descriptor.ValueClass {
	case decorate.ValueEnum:
		return "VALUE_TYPE_ENUM"
	case decorate.ValueBitfield:
		return "VALUE_TYPE_BITFIELD"
	case decorate.ValueRecord:
		return "VALUE_TYPE_STRUCT"
	default:
		return "VALUE_TYPE_" + strings.ToUpper(descriptor.Target)
	}
}

// cString renders s as a C++ string literal.
func cString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\%03o`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
