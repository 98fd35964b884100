// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package definition

// Catalog is the full set of declarations from one compiler run, in load
// order. The lookup maps index the slices by name; when two declarations
// share a name the first one loaded wins, matching a linear scan.
type Catalog struct {
	// Documents lists the base names of the loaded schema documents in
	// the order they were given.
	Documents []string

	Enums     []*Enum
	Bitfields []*Bitfield
	Records   []*Record

	enumsByName     map[string]*Enum
	bitfieldsByName map[string]*Bitfield
	recordsByName   map[string]*Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		enumsByName:     make(map[string]*Enum),
		bitfieldsByName: make(map[string]*Bitfield),
		recordsByName:   make(map[string]*Record),
	}
}

// AddEnum appends an enum declaration.
func (c *Catalog) AddEnum(enum *Enum) {
	c.Enums = append(c.Enums, enum)
	if _, exists := c.enumsByName[enum.Name]; !exists {
		c.enumsByName[enum.Name] = enum
	}
}

// AddBitfield appends a bitfield declaration.
func (c *Catalog) AddBitfield(bitfield *Bitfield) {
	c.Bitfields = append(c.Bitfields, bitfield)
	if _, exists := c.bitfieldsByName[bitfield.Name]; !exists {
		c.bitfieldsByName[bitfield.Name] = bitfield
	}
}

// AddRecord appends a record declaration.
func (c *Catalog) AddRecord(record *Record) {
	c.Records = append(c.Records, record)
	if _, exists := c.recordsByName[record.Name]; !exists {
		c.recordsByName[record.Name] = record
	}
}

// Enum looks up an enum by name.
func (c *Catalog) Enum(name string) (*Enum, bool) {
	enum, ok := c.enumsByName[name]
	return enum, ok
}

// Bitfield looks up a bitfield by name.
func (c *Catalog) Bitfield(name string) (*Bitfield, bool) {
	bitfield, ok := c.bitfieldsByName[name]
	return bitfield, ok
}

// Record looks up a record by name.
func (c *Catalog) Record(name string) (*Record, bool) {
	record, ok := c.recordsByName[name]
	return record, ok
}

// Ancestors returns the inheritance chain of record, root-most first,
// not including record itself. A parent name with no declaration ends
// the chain.
func (c *Catalog) Ancestors(record *Record) []*Record {
	var chain []*Record
	for current := record; current.Inherits != ""; {
		parent, ok := c.Record(current.Inherits)
		if !ok {
			break
		}
		chain = append(chain, parent)
		current = parent
	}
	for left, right := 0, len(chain)-1; left < right; left, right = left+1, right-1 {
		chain[left], chain[right] = chain[right], chain[left]
	}
	return chain
}
