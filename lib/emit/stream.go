// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Stream builds C++ source text with block indentation.
type Stream struct {
	buf    strings.Builder
	indent int
}

// NewStream returns a stream whose lines start at the given indentation
// level.
func NewStream(indent int) *Stream {
	return &Stream{indent: indent}
}

// Line writes one line at the current indentation. An empty format
// writes a blank line. Literal text containing % goes through Raw or a
// "%s" format.
func (s *Stream) Line(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		s.buf.WriteByte('\n')
		return
	}
	s.writeIndent()
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (s *Stream) Blank() {
	s.buf.WriteByte('\n')
}

// Block writes the line followed by " {" and indents. An empty line
// opens a bare scope.
func (s *Stream) Block(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	s.writeIndent()
	if line != "" {
		s.buf.WriteString(line)
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString("{\n")
	s.indent++
}

// EndBlock dedents and closes the block.
func (s *Stream) EndBlock() {
	s.EndBlockSuffix("")
}

// EndBlockSuffix dedents and closes the block with a suffix, such as
// ";" or " else {".
func (s *Stream) EndBlockSuffix(suffix string) {
	s.indent--
	s.writeIndent()
	s.buf.WriteByte('}')
	s.buf.WriteString(suffix)
	s.buf.WriteByte('\n')
}

// Raw writes text verbatim.
func (s *Stream) Raw(text string) {
	s.buf.WriteString(text)
}

// String returns the text written so far.
func (s *Stream) String() string {
	return s.buf.String()
}

// Len returns the number of bytes written so far.
func (s *Stream) Len() int {
	return s.buf.Len()
}

func (s *Stream) writeIndent() {
	for i := 0; i < s.indent; i++ {
		s.buf.WriteString(indentUnit)
	}
}

// Unit is the output of the passes for one record.
type Unit struct {
	Name string

	// Declaration receives member function declarations; it is
	// indented to sit inside the struct body in the parser header.
	Declaration *Stream

	// Definition receives function definitions for the record's .cpp.
	Definition *Stream
}

// NewUnit returns an empty unit for a record.
func NewUnit(name string) *Unit {
	return &Unit{
		Name:        name,
		Declaration: NewStream(2),
		Definition:  NewStream(1),
	}
}
