// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"encoding/json"
	"strings"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
)

// GenerateHEKTagData writes a record in authoring (big-endian tag file)
// form. Compiled-only members are written as zero. Hidden members are
// left at zero unless hidden extraction is enabled.
type GenerateHEKTagData struct{}

func (GenerateHEKTagData) Name() string { return "generate_hek_tag_data" }

func (GenerateHEKTagData) Emit(c *Context, unit *Unit) {
	hek := c.HEK()
	unit.Declaration.Line("std::vector<std::byte> generate_hek_tag_data(std::optional<TagFourCC> generate_header_class = std::nullopt, bool clear_on_save = false) override;")

	s := unit.Definition
	s.Block("std::vector<std::byte> %s::generate_hek_tag_data(std::optional<TagFourCC> generate_header_class, bool clear_on_save)", c.Name())
	s.Line("std::vector<std::byte> converted_data(sizeof(struct_big));")
	s.Line("std::size_t offset = 0;")
	s.Block("if(generate_header_class.has_value())")
	s.Line("offset = sizeof(%s::TagFileHeader);", hek)
	s.Line("converted_data.insert(converted_data.begin(), offset, std::byte());")
	s.Line("new (converted_data.data()) %s::TagFileHeader(*generate_header_class);", hek)
	s.EndBlock()
	s.Line("auto *b = reinterpret_cast<struct_big *>(converted_data.data() + offset);")
	s.Line("std::memset(b, 0, sizeof(*b));")

	var deferred []*decorate.Descriptor
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		if descriptor.Field.Hidden && !c.ExtractHidden {
			continue
		}
		// Left zero by the memset above.
		if descriptor.Field.CacheOnly {
			continue
		}
		switch descriptor.Kind {
		case definition.FieldReference:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("b->%s.tag_fourcc = this->%s.tag_fourcc;", element, element)
				s.Line("b->%s.path_size = static_cast<std::uint32_t>(this->%s.path.size());", element, element)
				s.Line("b->%s.tag_id = %s::TagID::null_tag_id();", element, hek)
			})
			deferred = append(deferred, descriptor)
		case definition.FieldSequence:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("b->%s.count = static_cast<std::uint32_t>(this->%s.size());", element, element)
			})
			deferred = append(deferred, descriptor)
		case definition.FieldRawBuffer:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("b->%s.size = static_cast<std::uint32_t>(this->%s.size());", element, element)
			})
			deferred = append(deferred, descriptor)
		default:
			if descriptor.IsArray() {
				s.Line("std::copy(this->%s, this->%s + %d, b->%s);", descriptor.Member(), descriptor.Member(), descriptor.Count, descriptor.Member())
			} else {
				s.Line("b->%s = this->%s;", descriptor.Member(), descriptor.Member())
			}
		}
	}
	if len(deferred) > 0 {
		s.Line("b = nullptr;")
	}

	// Variable-length payloads follow the fixed part in member order.
	for _, descriptor := range deferred {
		switch descriptor.Kind {
		case definition.FieldReference:
			eachElement(s, descriptor, "this->", func(element string) {
				s.Block("if(!%s.path.empty())", element)
				s.Line("const auto *path = reinterpret_cast<const std::byte *>(%s.path.c_str());", element)
				s.Line("converted_data.insert(converted_data.end(), path, path + %s.path.size() + 1);", element)
				s.EndBlock()
			})
		case definition.FieldSequence:
			eachElement(s, descriptor, "this->", func(element string) {
				s.Block("for(auto &i : %s)", element)
				s.Line("auto element = i.generate_hek_tag_data(std::nullopt, clear_on_save);")
				s.Line("converted_data.insert(converted_data.end(), element.begin(), element.end());")
				s.EndBlock()
			})
		case definition.FieldRawBuffer:
			eachElement(s, descriptor, "this->", func(element string) {
				s.Line("converted_data.insert(converted_data.end(), %s.begin(), %s.end());", element, element)
			})
		}
	}
	s.Line("return converted_data;")
	s.EndBlock()
	s.Blank()
}

// ParseHEKTagFile parses a complete authoring-form tag file, header
// included.
type ParseHEKTagFile struct{}

func (ParseHEKTagFile) Name() string { return "parse_hek_tag_file" }

func (ParseHEKTagFile) Emit(c *Context, unit *Unit) {
	name := c.Name()
	unit.Declaration.Line("static %s parse_hek_tag_file(const std::byte *data, std::size_t data_size, bool postprocess = false);", name)

	s := unit.Definition
	s.Block("%s %s::parse_hek_tag_file(const std::byte *data, std::size_t data_size, bool postprocess)", name, name)
	s.Line("%s::TagFileHeader::validate_header(reinterpret_cast<const %s::TagFileHeader *>(data), data_size);", c.HEK(), c.HEK())
	s.Line("std::size_t data_read = 0;")
	s.Line("std::size_t expected_size = data_size - sizeof(%s::TagFileHeader);", c.HEK())
	s.Line("auto r = parse_hek_tag_data(data + sizeof(%s::TagFileHeader), expected_size, data_read, postprocess);", c.HEK())
	s.Block("if(data_read != expected_size)")
	s.Line("eprintf_error(\"invalid tag file; tag data was left over\");")
	s.Line("throw InvalidTagDataException();")
	s.EndBlock()
	s.Line("return r;")
	s.EndBlock()
	s.Blank()
}

// ParseHEKTagData parses a record from authoring-form data, fills
// declared defaults into members that are zero, and runs the
// postprocess_hek_data hook.
type ParseHEKTagData struct{}

func (ParseHEKTagData) Name() string { return "parse_hek_tag_data" }

func (ParseHEKTagData) Emit(c *Context, unit *Unit) {
	name := c.Name()
	postprocess := c.Capabilities().PostprocessHEKData
	unit.Declaration.Line("static %s parse_hek_tag_data(const std::byte *data, std::size_t data_size, std::size_t &data_read, bool postprocess = false);", name)
	if postprocess {
		unit.Declaration.Line("void postprocess_hek_data();")
	}

	s := unit.Definition
	s.Block("%s %s::parse_hek_tag_data(const std::byte *data, std::size_t data_size, std::size_t &data_read, bool postprocess)", name, name)
	s.Line("%s r = {};", name)
	s.Line("std::size_t expected_data_size = sizeof(struct_big);")
	s.Block("if(expected_data_size > data_size)")
	s.Line("eprintf_error(\"%s::parse_hek_tag_data: %%zu bytes expected, got %%zu\", expected_data_size, data_size);", name)
	s.Line("throw OutOfBoundsException();")
	s.EndBlock()
	s.Line("const auto &h = *reinterpret_cast<const struct_big *>(data);")

	var deferred []*decorate.Descriptor
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		switch descriptor.Kind {
		case definition.FieldReference, definition.FieldSequence, definition.FieldRawBuffer:
			deferred = append(deferred, descriptor)
		default:
			if descriptor.IsArray() {
				s.Line("std::copy(h.%s, h.%s + %d, r.%s);", descriptor.Member(), descriptor.Member(), descriptor.Count, descriptor.Member())
			} else {
				s.Line("r.%s = h.%s;", descriptor.Member(), descriptor.Member())
			}
		}
	}
	s.Line("data_read = expected_data_size;")
	for _, descriptor := range deferred {
		switch descriptor.Kind {
		case definition.FieldReference:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("std::size_t path_size = h.%s.path_size.read();", element)
				s.Line("r.%s.tag_fourcc = h.%s.tag_fourcc.read();", element, element)
				s.Block("if(path_size > 0)")
				s.Line("const auto *path = reinterpret_cast<const char *>(data + data_read);")
				s.Line("r.%s.path = std::string(path, path_size);", element)
				s.Line("data_read += path_size + 1;")
				s.EndBlock()
				s.EndBlock()
			})
		case definition.FieldSequence:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("std::size_t count = h.%s.count.read();", element)
				s.Line("r.%s.reserve(count);", element)
				s.Block("for(std::size_t i = 0; i < count; i++)")
				s.Line("std::size_t element_read = 0;")
				s.Line("r.%s.emplace_back(%s::parse_hek_tag_data(data + data_read, data_size - data_read, element_read, postprocess));", element, descriptor.Target)
				s.Line("data_read += element_read;")
				s.EndBlock()
				s.EndBlock()
			})
		case definition.FieldRawBuffer:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("std::size_t size = h.%s.size.read();", element)
				s.Line("r.%s = std::vector<std::byte>(data + data_read, data + data_read + size);", element)
				s.Line("data_read += size;")
				s.EndBlock()
			})
		}
	}

	for index := range c.Fields {
		descriptor := &c.Fields[index]
		values, err := descriptor.Field.DefaultValues()
		if err != nil || len(values) == 0 {
			continue
		}
		emitDefault(s, descriptor, values)
	}

	if postprocess {
		s.Block("if(postprocess)")
		s.Line("r.postprocess_hek_data();")
		s.EndBlock()
	}
	s.Line("return r;")
	s.EndBlock()
	s.Blank()
}

// emitDefault assigns declared default values to members left at zero.
// Values apply to every element of an array. A bounds pair takes one
// value for both ends or two values for (from, to).
func emitDefault(s *Stream, descriptor *decorate.Descriptor, values []json.Number) {
	literals := make([]string, len(values))
	for index, value := range values {
		literals[index] = literal(value.String(), descriptor.Kind == definition.FieldFloat)
	}
	eachElement(s, descriptor, "r.", func(element string) {
		if descriptor.Bounds {
			upper := literals[0]
			if len(literals) > 1 {
				upper = literals[1]
			}
			s.Block("if(%s.from == 0 && %s.to == 0)", element, element)
			s.Line("%s.from = %s;", element, literals[0])
			s.Line("%s.to = %s;", element, upper)
			s.EndBlock()
			return
		}
		if len(literals) == 1 {
			s.Block("if(%s == 0)", element)
			s.Line("%s = %s;", element, literals[0])
			s.EndBlock()
			return
		}
		s.Block("if(%s == decltype(%s) {})", element, element)
		s.Line("%s = { %s };", element, strings.Join(literals, ", "))
		s.EndBlock()
	})
}

// literal renders a default as a C++ literal. Float members get an "f"
// suffix so the assignment does not narrow from double.
func literal(value string, float bool) string {
	if !float {
		return value
	}
	if !strings.ContainsAny(value, ".eE") {
		value += ".0"
	}
	return value + "f"
}
