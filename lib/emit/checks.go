// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strconv"
	"strings"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
)

// nullIndex is the index value that means "no element".
const nullIndex = "0xFFFF"

// emitCheck writes one validator. Each validator reports whether it found
// a problem, optionally repairs it when fix is true, and recurses into
// nested sequence elements. body writes the record-local checks and uses
// "found" and "fix".
func emitCheck(c *Context, unit *Unit, function string, body func(s *Stream)) {
	unit.Declaration.Line("bool %s(bool fix = false) override;", function)

	s := unit.Definition
	s.Block("bool %s::%s([[maybe_unused]] bool fix)", c.Name(), function)
	s.Line("bool found = false;")
	body(s)
	for _, descriptor := range c.fieldsOf(definition.FieldSequence) {
		eachElement(s, descriptor, "this->", func(element string) {
			s.Block("for(auto &i : %s)", element)
			s.Line("found = i.%s(fix) || found;", function)
			s.EndBlock()
		})
	}
	s.Line("return found;")
	s.EndBlock()
	s.Blank()
}

// report writes the diagnostic and repair for one failed condition.
func report(s *Stream, condition, message, repair string) {
	s.Block("if(%s)", condition)
	s.Line("eprintf_warn(%s);", cString(strings.ReplaceAll(message, "%", "%%")))
	s.Line("found = true;")
	if repair != "" {
		s.Block("if(fix)")
		s.Line("%s;", repair)
		s.EndBlock()
	}
	s.EndBlock()
}

// scalars returns the expressions holding the values of one element: the
// element itself, or both ends of a bounds pair.
func scalars(descriptor *decorate.Descriptor, element string) []string {
	if descriptor.Bounds {
		return []string{element + ".from", element + ".to"}
	}
	return []string{element}
}

// CheckBrokenEnums finds enum members holding values past the last
// option. Repair resets them to the first option.
type CheckBrokenEnums struct{}

func (CheckBrokenEnums) Name() string { return "check_for_broken_enums" }

func (p CheckBrokenEnums) Emit(c *Context, unit *Unit) {
	emitCheck(c, unit, p.Name(), func(s *Stream) {
		for index := range c.Fields {
			descriptor := &c.Fields[index]
			if descriptor.Kind != definition.FieldValue || descriptor.ValueClass != decorate.ValueEnum {
				continue
			}
			count := c.HEK() + "::" + descriptor.Target + "_ENUM_COUNT"
			eachElement(s, descriptor, "this->", func(element string) {
				for _, value := range scalars(descriptor, element) {
					report(s,
						"static_cast<std::size_t>("+value+") >= "+count,
						c.Name()+"::"+descriptor.Name()+" holds an invalid enum value",
						value+" = static_cast<"+c.HEK()+"::"+descriptor.Target+">(0)")
				}
			})
		}
	})
}

// CheckInvalidReferences finds required references that are empty and
// references to classes outside the allowed set. Repair nulls the
// reference.
type CheckInvalidReferences struct{}

func (CheckInvalidReferences) Name() string { return "check_for_invalid_references" }

func (p CheckInvalidReferences) Emit(c *Context, unit *Unit) {
	emitCheck(c, unit, p.Name(), func(s *Stream) {
		for _, descriptor := range c.fieldsOf(definition.FieldReference) {
			label := c.Name() + "::" + descriptor.Name()
			eachElement(s, descriptor, "this->", func(element string) {
				if descriptor.Field.NonNull {
					report(s, element+".path.empty()", label+" must not be null", "")
				}
				if len(descriptor.Classes) == 0 {
					return
				}
				allowed := make([]string, len(descriptor.Classes))
				for index, class := range descriptor.Classes {
					allowed[index] = element + ".tag_fourcc != " + fourCC(class)
				}
				report(s,
					"!"+element+".path.empty() && "+strings.Join(allowed, " && "),
					label+" references a tag of a class that is not allowed",
					element+".path.clear()")
			})
		}
	})
}

// CheckInvalidIndices finds indices at or past the element count of the
// sequence they index. The sequence is the sibling member named by the
// field's "reflexive" key, or else the sibling sequence of the index's
// target record. Indices with no resolvable sequence are context-free
// and are not checked. Repair sets the index to null.
type CheckInvalidIndices struct{}

func (CheckInvalidIndices) Name() string { return "check_for_invalid_indices" }

func (p CheckInvalidIndices) Emit(c *Context, unit *Unit) {
	emitCheck(c, unit, p.Name(), func(s *Stream) {
		for _, descriptor := range c.fieldsOf(definition.FieldIndex) {
			sequence, ok := c.indexedSequence(descriptor)
			if !ok {
				continue
			}
			label := c.Name() + "::" + descriptor.Name()
			eachElement(s, descriptor, "this->", func(element string) {
				for _, value := range scalars(descriptor, element) {
					report(s,
						value+" != "+nullIndex+" && "+value+" >= this->"+sequence.Member()+".size()",
						label+" indexes past the end of "+sequence.Name(),
						value+" = "+nullIndex)
				}
			})
		}
	})
}

// indexedSequence finds the sequence an index counts into.
func (c *Context) indexedSequence(index *decorate.Descriptor) (*decorate.Descriptor, bool) {
	if reflexive := index.Field.Reflexive; reflexive != "" {
		for _, candidate := range c.fieldsOf(definition.FieldSequence) {
			if candidate.Name() == reflexive || candidate.Member() == reflexive {
				return candidate, true
			}
		}
		return nil, false
	}
	if index.Target == "" {
		return nil, false
	}
	for _, candidate := range c.fieldsOf(definition.FieldSequence) {
		if candidate.Target == index.Target && !candidate.IsArray() {
			return candidate, true
		}
	}
	return nil, false
}

// CheckInvalidRanges finds values outside a field's declared minimum and
// maximum, and bounds pairs whose lower end exceeds the upper end.
// Repair clamps out-of-range values and swaps inverted bounds.
type CheckInvalidRanges struct{}

func (CheckInvalidRanges) Name() string { return "check_for_invalid_ranges" }

func (p CheckInvalidRanges) Emit(c *Context, unit *Unit) {
	emitCheck(c, unit, p.Name(), func(s *Stream) {
		for index := range c.Fields {
			descriptor := &c.Fields[index]
			field := descriptor.Field
			if field.Minimum == nil && field.Maximum == nil && !descriptor.Bounds {
				continue
			}
			label := c.Name() + "::" + descriptor.Name()
			float := descriptor.Kind == definition.FieldFloat
			eachElement(s, descriptor, "this->", func(element string) {
				for _, value := range scalars(descriptor, element) {
					if field.Minimum != nil {
						minimum := literal(formatLimit(*field.Minimum), float)
						report(s, value+" < "+minimum, label+" is below its minimum", value+" = "+minimum)
					}
					if field.Maximum != nil {
						maximum := literal(formatLimit(*field.Maximum), float)
						report(s, value+" > "+maximum, label+" is above its maximum", value+" = "+maximum)
					}
				}
				if descriptor.Bounds {
					report(s, element+".from > "+element+".to", label+" has inverted bounds",
						"std::swap("+element+".from, "+element+".to)")
				}
			})
		}
	})
}

func formatLimit(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
