// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import "github.com/bureau-foundation/tagforge/lib/definition"

// RefactorReference rewrites references that point at one tag to point
// at another, recursing into nested sequences. It returns the number of
// references changed.
type RefactorReference struct{}

func (RefactorReference) Name() string { return "refactor_reference" }

func (RefactorReference) Emit(c *Context, unit *Unit) {
	unit.Declaration.Line("std::size_t refactor_reference(const char *from_path, TagFourCC from_class, const char *to_path, TagFourCC to_class) override;")

	references := c.fieldsOf(definition.FieldReference, definition.FieldSequence)
	s := unit.Definition
	if len(references) == 0 {
		s.Block("std::size_t %s::refactor_reference(const char *, TagFourCC, const char *, TagFourCC)", c.Name())
		s.Line("return 0;")
		s.EndBlock()
		s.Blank()
		return
	}

	s.Block("std::size_t %s::refactor_reference(const char *from_path, TagFourCC from_class, const char *to_path, TagFourCC to_class)", c.Name())
	s.Line("std::size_t replaced = 0;")
	for _, descriptor := range references {
		if descriptor.Kind == definition.FieldSequence {
			eachElement(s, descriptor, "this->", func(element string) {
				s.Block("for(auto &i : %s)", element)
				s.Line("replaced += i.refactor_reference(from_path, from_class, to_path, to_class);")
				s.EndBlock()
			})
			continue
		}
		eachElement(s, descriptor, "this->", func(element string) {
			s.Block("if(%s.tag_fourcc == from_class && %s.path == from_path)", element, element)
			s.Line("%s.path = to_path;", element)
			s.Line("%s.tag_fourcc = to_class;", element)
			s.Line("replaced++;")
			s.EndBlock()
		})
	}
	s.Line("return replaced;")
	s.EndBlock()
	s.Blank()
}
