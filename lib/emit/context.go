// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strings"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
)

// Context is everything a pass may read about one record.
type Context struct {
	Record *definition.Record

	// Fields is the record's flattened field list. Passes must not
	// modify it.
	Fields []decorate.Descriptor

	Catalog *definition.Catalog
	Order   *depgraph.Order
	Engine  *decorate.Engine

	// ExtractHidden includes hidden fields in authoring-form output.
	ExtractHidden bool
}

// Name returns the record name.
func (c *Context) Name() string {
	return c.Record.Name
}

// Capabilities returns the record's hook flags.
func (c *Context) Capabilities() definition.Capabilities {
	return c.Record.Capabilities
}

// HEK returns the layout namespace.
func (c *Context) HEK() string {
	return c.Engine.Namespace()
}

// fieldsOf returns the descriptors of the given kinds.
func (c *Context) fieldsOf(kinds ...definition.FieldKind) []*decorate.Descriptor {
	var matched []*decorate.Descriptor
	for index := range c.Fields {
		descriptor := &c.Fields[index]
		for _, kind := range kinds {
			if descriptor.Kind == kind {
				matched = append(matched, descriptor)
				break
			}
		}
	}
	return matched
}

// member finds a flattened descriptor by member name.
func (c *Context) member(name string) (*decorate.Descriptor, bool) {
	for index := range c.Fields {
		if c.Fields[index].Member() == name {
			return &c.Fields[index], true
		}
	}
	return nil, false
}

// eachElement calls body once for a scalar member, or inside a loop over
// the elements of an inline array. object is the expression prefix the
// member is accessed through, such as "this->" or "r.".
func eachElement(s *Stream, descriptor *decorate.Descriptor, object string, body func(element string)) {
	member := object + descriptor.Member()
	if !descriptor.IsArray() {
		body(member)
		return
	}
	s.Block("for(std::size_t a = 0; a < %d; a++)", descriptor.Count)
	body(member + "[a]")
	s.EndBlock()
}

// fourCC renders the tag class constant for a class name.
func fourCC(class string) string {
	return "TagFourCC::TAG_FOURCC_" + strings.ToUpper(class)
}
