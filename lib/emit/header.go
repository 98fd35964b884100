// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"github.com/bureau-foundation/tagforge/lib/decorate"
)

// Declaration is one record's entry in the aggregate header: its
// flattened members and the declarations its passes produced.
type Declaration struct {
	Name   string
	Fields []decorate.Descriptor
	Unit   *Unit
}

// AggregateHeader renders the parser declaration header. Each record's
// struct sits behind its own guard so a translation unit only sees the
// declarations it opts into.
func AggregateHeader(settings Settings, declarations []Declaration) string {
	settings = settings.WithDefaults()
	guard := settings.includeGuard("TAG", "PARSER", "PARSER_HPP")
	hek := settings.HEKNamespace

	s := NewStream(0)
	settings.writeHeader(s)
	s.Line("#ifndef %s", guard)
	s.Line("#define %s", guard)
	s.Blank()
	s.Line("#include <string>")
	s.Line("#include <optional>")
	s.Line(`#include "../../map/map.hpp"`)
	s.Line(`#include "parser_struct.hpp"`)
	s.Blank()
	if root := settings.root(); root != "" {
		s.Block("namespace %s", root)
		s.Line("class BuildWorkload;")
		s.EndBlock()
	}
	s.Block("namespace %s", settings.Namespace)
	for _, declaration := range declarations {
		s.Blank()
		s.Line("#ifdef %s", settings.Guard(declaration.Name))
		s.Block("struct %s : public ParserStruct", declaration.Name)
		s.Line("using struct_big = %s::%s<%s::BigEndian>;", hek, declaration.Name, hek)
		s.Line("using struct_little = %s::%s<%s::LittleEndian>;", hek, declaration.Name, hek)
		for index := range declaration.Fields {
			s.Line("%s;", declaration.Fields[index].Declarator())
		}
		s.Blank()
		if declaration.Unit != nil {
			s.Raw(declaration.Unit.Declaration.String())
		}
		s.Line("~%s() override = default;", declaration.Name)
		s.EndBlockSuffix(";")
		s.Line("#endif")
	}
	s.EndBlock()
	s.Blank()
	s.Line("#endif")
	return s.String()
}

// RecordSource renders the definition unit of one record: the preamble
// that opts into the record's declaration, then the pass output.
func RecordSource(settings Settings, unit *Unit) string {
	settings = settings.WithDefaults()
	s := NewStream(0)
	settings.writeHeader(s)
	s.Line("#define INVADER_DO_NOT_USE_EVERYTHING")
	s.Line("#define %s", settings.Guard(unit.Name))
	s.Line("#include <invader/tag/hek/header.hpp>")
	s.Line(`extern "C" std::uint32_t crc32(std::uint32_t crc, const void *buf, std::size_t size) noexcept;`)
	s.Line("#include <invader/tag/parser/parser.hpp>")
	s.Line("#include <invader/printf.hpp>")
	s.Line("#include <invader/build/build_workload.hpp>")
	s.Line("#include <invader/map/map.hpp>")
	s.Line("#include <invader/map/tag.hpp>")
	s.Line("#include <invader/file/file.hpp>")
	s.Blank()
	s.Block("namespace %s", settings.Namespace)
	s.Raw(unit.Definition.String())
	s.EndBlock()
	return s.String()
}
