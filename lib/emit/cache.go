// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import "github.com/bureau-foundation/tagforge/lib/definition"

// CacheDeformat converts a record parsed from a compiled map back into
// editable form: nested sequence elements are deformatted first, then the
// record's post_cache_deformat hook runs.
type CacheDeformat struct{}

func (CacheDeformat) Name() string { return "cache_deformat" }

func (CacheDeformat) Emit(c *Context, unit *Unit) {
	unit.Declaration.Line("void cache_deformat() override;")
	if c.Capabilities().PostCacheDeformat {
		unit.Declaration.Line("void post_cache_deformat();")
	}

	s := unit.Definition
	s.Block("void %s::cache_deformat()", c.Name())
	for _, descriptor := range c.fieldsOf(definition.FieldSequence) {
		eachElement(s, descriptor, "this->", func(element string) {
			s.Block("for(auto &i : %s)", element)
			s.Line("i.cache_deformat();")
			s.EndBlock()
		})
	}
	if c.Capabilities().PostCacheDeformat {
		s.Line("this->post_cache_deformat();")
	}
	s.EndBlock()
	s.Blank()
}

// CacheFormat writes the compiled (little-endian, cache) representation
// of a record into a build workload.
type CacheFormat struct{}

func (CacheFormat) Name() string { return "cache_format" }

func (CacheFormat) Emit(c *Context, unit *Unit) {
	capabilities := c.Capabilities()
	unit.Declaration.Line("void compile(BuildWorkload &workload, std::size_t tag_index, std::size_t struct_index, std::size_t bsp = 0, std::size_t offset = 0) override;")
	if capabilities.PreCompile {
		unit.Declaration.Line("void pre_compile(BuildWorkload &workload, std::size_t tag_index, std::size_t struct_index, std::size_t offset);")
	}
	if capabilities.PostCompile {
		unit.Declaration.Line("void post_compile(BuildWorkload &workload, std::size_t tag_index, std::size_t struct_index, std::size_t offset);")
	}

	s := unit.Definition
	s.Block("void %s::compile(BuildWorkload &workload, [[maybe_unused]] std::size_t tag_index, std::size_t struct_index, [[maybe_unused]] std::size_t bsp, std::size_t offset)", c.Name())
	if capabilities.PreCompile {
		s.Line("this->pre_compile(workload, tag_index, struct_index, offset);")
	}
	s.Line("auto *output = reinterpret_cast<struct_little *>(workload.structs[struct_index].data.data() + offset);")
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		switch descriptor.Kind {
		case definition.FieldReference:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("output->%s.tag_fourcc = this->%s.tag_fourcc;", element, element)
				s.Line("output->%s.path_pointer = 0xFFFFFFFF;", element)
				s.Line("output->%s.tag_id = %s::TagID::null_tag_id();", element, c.HEK())
				s.Block("if(!this->%s.path.empty())", element)
				s.Line("auto referenced = workload.compile_tag_recursively(this->%s.path.c_str(), this->%s.tag_fourcc);", element, element)
				s.Line("output = reinterpret_cast<struct_little *>(workload.structs[struct_index].data.data() + offset);")
				s.Line("output->%s.tag_id = %s::TagID { static_cast<std::uint32_t>(referenced) };", element, c.HEK())
				s.Line("workload.structs[struct_index].dependencies.push_back({ offset + reinterpret_cast<std::uintptr_t>(&output->%s) - reinterpret_cast<std::uintptr_t>(output), referenced, false });", element)
				s.EndBlock()
			})
		case definition.FieldSequence:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("auto count = this->%s.size();", element)
				s.Line("output->%s.count = static_cast<std::uint32_t>(count);", element)
				s.Block("if(count > 0)")
				s.Line("auto element_size = sizeof(%s::struct_little);", descriptor.Target)
				s.Line("auto child_index = workload.structs.size();")
				s.Line("workload.structs.emplace_back().data.resize(element_size * count);")
				s.Line("workload.structs[struct_index].pointers.push_back({ offset + offsetof(struct_little, %s), child_index });", descriptor.Member())
				s.Block("for(std::size_t i = 0; i < count; i++)")
				s.Line("this->%s[i].compile(workload, tag_index, child_index, bsp, i * element_size);", element)
				s.EndBlock()
				s.Line("output = reinterpret_cast<struct_little *>(workload.structs[struct_index].data.data() + offset);")
				s.EndBlock()
				s.EndBlock()
			})
		case definition.FieldRawBuffer:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("output->%s.size = static_cast<std::uint32_t>(this->%s.size());", element, element)
				s.Block("if(!this->%s.empty())", element)
				s.Line("auto child_index = workload.structs.size();")
				s.Line("workload.structs.emplace_back().data.insert(workload.structs[child_index].data.end(), this->%s.begin(), this->%s.end());", element, element)
				s.Line("workload.structs[struct_index].pointers.push_back({ offset + offsetof(struct_little, %s), child_index });", descriptor.Member())
				s.Line("output = reinterpret_cast<struct_little *>(workload.structs[struct_index].data.data() + offset);")
				s.EndBlock()
			})
		default:
			if descriptor.IsArray() {
				s.Line("std::copy(this->%s, this->%s + %d, output->%s);", descriptor.Member(), descriptor.Member(), descriptor.Count, descriptor.Member())
			} else {
				s.Line("output->%s = this->%s;", descriptor.Member(), descriptor.Member())
			}
		}
	}
	if capabilities.PostCompile {
		s.Line("this->post_compile(workload, tag_index, struct_index, offset);")
	}
	s.EndBlock()
	s.Blank()
}

// ParseCacheFileData reads a record from a compiled map.
type ParseCacheFileData struct{}

func (ParseCacheFileData) Name() string { return "parse_cache_file_data" }

func (ParseCacheFileData) Emit(c *Context, unit *Unit) {
	name := c.Name()
	unit.Declaration.Line("static %s parse_cache_file_data(const Invader::Tag &tag, std::optional<%s::Pointer> pointer = std::nullopt);", name, c.HEK())
	if c.Capabilities().PostCacheParse {
		unit.Declaration.Line("void post_cache_parse(const Invader::Tag &, std::optional<%s::Pointer>);", c.HEK())
	}

	s := unit.Definition
	s.Block("%s %s::parse_cache_file_data(const Invader::Tag &tag, std::optional<%s::Pointer> pointer)", name, name, c.HEK())
	s.Line("%s r = {};", name)
	s.Line("const auto &l = pointer.has_value() ? tag.get_struct_at_pointer<struct_little>(*pointer) : tag.get_base_struct<struct_little>();")
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		switch descriptor.Kind {
		case definition.FieldReference:
			eachElement(s, descriptor, "", func(element string) {
				s.Line("r.%s.tag_fourcc = l.%s.tag_fourcc.read();", element, element)
				s.Line("r.%s.tag_id = l.%s.tag_id.read();", element, element)
				s.Block("if(!r.%s.tag_id.is_null())", element)
				s.Line("auto &referenced = tag.get_map().get_tag(r.%s.tag_id.index);", element)
				s.Line("r.%s.path = referenced.get_path();", element)
				s.Line("r.%s.tag_fourcc = referenced.get_tag_fourcc();", element)
				s.EndBlock()
			})
		case definition.FieldSequence:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("std::size_t count = l.%s.count.read();", element)
				s.Line("auto address = l.%s.pointer.read();", element)
				s.Line("r.%s.reserve(count);", element)
				s.Block("for(std::size_t i = 0; i < count; i++)")
				s.Line("r.%s.emplace_back(%s::parse_cache_file_data(tag, address + i * sizeof(%s::struct_little)));", element, descriptor.Target, descriptor.Target)
				s.EndBlock()
				s.EndBlock()
			})
		case definition.FieldRawBuffer:
			eachElement(s, descriptor, "", func(element string) {
				s.Block("")
				s.Line("std::size_t size = l.%s.size.read();", element)
				s.Line("const auto *data = tag.data(l.%s.pointer.read(), size);", element)
				s.Line("r.%s = std::vector<std::byte>(data, data + size);", element)
				s.EndBlock()
			})
		default:
			if descriptor.IsArray() {
				s.Line("std::copy(l.%s, l.%s + %d, r.%s);", descriptor.Member(), descriptor.Member(), descriptor.Count, descriptor.Member())
			} else {
				s.Line("r.%s = l.%s;", descriptor.Member(), descriptor.Member())
			}
		}
	}
	if c.Capabilities().PostCacheParse {
		s.Line("r.post_cache_parse(tag, pointer);")
	}
	s.Line("return r;")
	s.EndBlock()
	s.Blank()
}
