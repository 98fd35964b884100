// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

// Pass is one generation pass. Emit appends to the unit's streams.
type Pass interface {
	Name() string
	Emit(c *Context, unit *Unit)
}

// DefaultPasses returns the generation passes in the order they must
// run for every record.
func DefaultPasses() []Pass {
	return []Pass{
		CacheDeformat{},
		CacheFormat{},
		ParseCacheFileData{},
		GenerateHEKTagData{},
		ParseHEKTagFile{},
		ParseHEKTagData{},
		RefactorReference{},
		ParserStruct{},
		CheckBrokenEnums{},
		CheckInvalidReferences{},
		CheckInvalidIndices{},
		CheckInvalidRanges{},
	}
}

// Run applies passes to unit in order.
func Run(passes []Pass, c *Context, unit *Unit) {
	for _, pass := range passes {
		pass.Emit(c, unit)
	}
}
