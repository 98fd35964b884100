// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
)

// DefinitionsHeader renders the shared layout header: enum and bitfield
// types with their helper declarations, then one endian-templated layout
// struct per record in resolved order.
func DefinitionsHeader(settings Settings, catalog *definition.Catalog, order *depgraph.Order) string {
	settings = settings.WithDefaults()
	guard := settings.includeGuard("TAG", "HEK", "DEFINITION_HPP")

	s := NewStream(0)
	settings.writeHeader(s)
	s.Line("#ifndef %s", guard)
	s.Line("#define %s", guard)
	s.Blank()
	s.Line("#include <cstddef>")
	s.Line("#include <cstdint>")
	s.Line("#include <optional>")
	s.Line("#include <vector>")
	s.Line(`#include "../../hek/data_type.hpp"`)
	s.Line(`#include "../../hek/pad.hpp"`)
	s.Blank()
	s.Block("namespace %s", settings.qualifiedHEK())
	for _, enum := range catalog.Enums {
		writeEnum(s, enum)
	}
	for _, bitfield := range catalog.Bitfields {
		writeBitfield(s, bitfield)
	}
	engine := decorate.NewEngine(catalog, settings.HEKNamespace)
	for _, resolved := range order.Records {
		writeLayout(s, engine, resolved.Record)
	}
	s.EndBlock()
	s.Blank()
	s.Line("#endif")
	return s.String()
}

func writeEnum(s *Stream, enum *definition.Enum) {
	if enum.Comment != "" {
		s.Line("// %s", enum.Comment)
	}
	s.Block("enum %s : std::uint16_t", enum.Name)
	for _, option := range enum.FormattedOptions {
		s.Line("%s_%s,", enum.Name, option)
	}
	s.Line("%s_ENUM_COUNT", enum.Name)
	s.EndBlockSuffix(";")
	s.Line("const char *%s_to_string(%s value);", enum.Name, enum.Name)
	s.Line("std::optional<%s> %s_from_string(const char *value);", enum.Name, enum.Name)
	s.Line("std::vector<const char *> %s_names();", enum.Name)
	s.Blank()
}

func writeBitfield(s *Stream, bitfield *definition.Bitfield) {
	storage := fmt.Sprintf("std::uint%d_t", bitfield.StorageWidth())
	if bitfield.Comment != "" {
		s.Line("// %s", bitfield.Comment)
	}
	s.Line("using %s = %s;", bitfield.Name, storage)
	s.Block("enum : %s", storage)
	for bit, field := range bitfield.FormattedFields {
		s.Line("%s_%s = static_cast<%s>(1) << %d,", bitfield.Name, field, storage, bit)
	}
	s.EndBlockSuffix(";")
	s.Line("const char *%s_to_string(%s bit);", bitfield.Name, bitfield.Name)
	s.Line("std::optional<%s> %s_from_string(const char *value);", bitfield.Name, bitfield.Name)
	s.Line("std::vector<const char *> %s_names();", bitfield.Name)
	s.Blank()
}

// writeLayout writes the byte layout of one record. Inherited members
// come from the base class; padding is kept so the layout matches the
// declared size.
func writeLayout(s *Stream, engine *decorate.Engine, record *definition.Record) {
	s.Line("template <template<typename> class EndianType>")
	if record.Inherits != "" {
		s.Block("struct %s : %s<EndianType>", record.Name, record.Inherits)
	} else {
		s.Block("struct %s", record.Name)
	}
	for _, descriptor := range engine.Declared(record) {
		if descriptor.Kind == definition.FieldPadding {
			s.Line("PAD(0x%X);", descriptor.PaddingSize)
			continue
		}
		layout := layoutType(&descriptor)
		if descriptor.IsArray() {
			s.Line("%s %s[%d];", layout, descriptor.Member(), descriptor.Count)
		} else {
			s.Line("%s %s;", layout, descriptor.Member())
		}
	}
	s.Blank()
	s.Line("ENDIAN_TEMPLATE(OtherEndian) operator %s<OtherEndian>() const;", record.Name)
	s.EndBlockSuffix(";")
	if record.Size > 0 {
		s.Line("static_assert(sizeof(%s<NativeEndian>) == 0x%X);", record.Name, record.Size)
	}
	s.Blank()
}

// layoutType renders the endian-templated storage type of a field.
func layoutType(descriptor *decorate.Descriptor) string {
	field := descriptor.Field
	var base string
	switch descriptor.Kind {
	case definition.FieldInteger:
		base = fmt.Sprintf("EndianType<std::%s_t>", field.Type)
	case definition.FieldFloat:
		base = "EndianType<float>"
	case definition.FieldReference:
		base = "TagDependency<EndianType>"
	case definition.FieldSequence:
		base = fmt.Sprintf("TagReflexive<EndianType, %s>", descriptor.Target)
	case definition.FieldRawBuffer:
		base = "TagDataOffset<EndianType>"
	case definition.FieldIndex:
		base = "EndianType<std::uint16_t>"
	default:
		switch descriptor.ValueClass {
		case decorate.ValueEnum, decorate.ValueBitfield:
			base = fmt.Sprintf("EndianType<%s>", descriptor.Target)
		default:
			base = fmt.Sprintf("%s<EndianType>", descriptor.Target)
		}
	}
	if descriptor.Flagged {
		base = fmt.Sprintf("FlaggedInt<%s>", base)
	}
	if descriptor.Bounds {
		base = fmt.Sprintf("Bounds<%s>", base)
	}
	return base
}

// EnumSource renders the enum support unit: name tables and string
// conversions for every enum.
func EnumSource(settings Settings, catalog *definition.Catalog) string {
	settings = settings.WithDefaults()
	s := supportPreamble(settings)
	for _, enum := range catalog.Enums {
		table := enum.Name + "_NAMES"
		count := enum.Name + "_ENUM_COUNT"
		writeNameTable(s, table, enum.FormattedOptions)
		s.Block("const char *%s_to_string(%s value)", enum.Name, enum.Name)
		s.Line("return static_cast<std::size_t>(value) < %s ? %s[value] : nullptr;", count, table)
		s.EndBlock()
		s.Block("std::optional<%s> %s_from_string(const char *value)", enum.Name, enum.Name)
		s.Block("for(std::size_t i = 0; i < %s; i++)", count)
		s.Block("if(std::strcmp(%s[i], value) == 0)", table)
		s.Line("return static_cast<%s>(i);", enum.Name)
		s.EndBlock()
		s.EndBlock()
		s.Line("return std::nullopt;")
		s.EndBlock()
		writeNames(s, enum.Name, table, count)
	}
	s.EndBlock()
	return s.String()
}

// BitfieldSource renders the bitfield support unit. Conversions work on
// single bits.
func BitfieldSource(settings Settings, catalog *definition.Catalog) string {
	settings = settings.WithDefaults()
	s := supportPreamble(settings)
	for _, bitfield := range catalog.Bitfields {
		table := bitfield.Name + "_NAMES"
		count := fmt.Sprintf("%d", len(bitfield.FormattedFields))
		writeNameTable(s, table, bitfield.FormattedFields)
		s.Block("const char *%s_to_string(%s bit)", bitfield.Name, bitfield.Name)
		s.Block("for(std::size_t i = 0; i < %s; i++)", count)
		s.Block("if(bit == (static_cast<%s>(1) << i))", bitfield.Name)
		s.Line("return %s[i];", table)
		s.EndBlock()
		s.EndBlock()
		s.Line("return nullptr;")
		s.EndBlock()
		s.Block("std::optional<%s> %s_from_string(const char *value)", bitfield.Name, bitfield.Name)
		s.Block("for(std::size_t i = 0; i < %s; i++)", count)
		s.Block("if(std::strcmp(%s[i], value) == 0)", table)
		s.Line("return static_cast<%s>(static_cast<%s>(1) << i);", bitfield.Name, bitfield.Name)
		s.EndBlock()
		s.EndBlock()
		s.Line("return std::nullopt;")
		s.EndBlock()
		writeNames(s, bitfield.Name, table, count)
	}
	s.EndBlock()
	return s.String()
}

func supportPreamble(settings Settings) *Stream {
	s := NewStream(0)
	settings.writeHeader(s)
	s.Line("#include <cstring>")
	s.Line("#include <invader/tag/hek/definition.hpp>")
	s.Blank()
	s.Block("namespace %s", settings.qualifiedHEK())
	return s
}

// writeNameTable writes the string names of options. Names are the
// lowercased identifiers, which is what tag editors display and accept.
func writeNameTable(s *Stream, table string, identifiers []string) {
	if len(identifiers) == 0 {
		s.Line("static const char *const *%s = nullptr;", table)
		return
	}
	s.Block("static const char *const %s[] =", table)
	for _, identifier := range identifiers {
		s.Line("%s,", cString(strings.ToLower(identifier)))
	}
	s.EndBlockSuffix(";")
}

func writeNames(s *Stream, name, table, count string) {
	s.Block("std::vector<const char *> %s_names()", name)
	s.Line("return std::vector<const char *>(%s, %s + %s);", table, table, count)
	s.EndBlock()
	s.Blank()
}
