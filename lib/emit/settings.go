// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strings"
	"unicode"
)

// Default settings, matching the layout the generated sources are
// compiled into.
const (
	DefaultLicenseHeader = "SPDX-License-Identifier: GPL-3.0-only"
	DefaultNamespace     = "Invader::Parser"
	DefaultHEKNamespace  = "HEK"
	DefaultGuardPrefix   = "USE_"
)

const generatedNotice = "This file was auto-generated.\nIf you want to edit this, edit the .json definitions and rerun the generator, instead."

// Settings control the naming used in generated sources.
type Settings struct {
	// LicenseHeader is written as line comments at the top of every
	// generated file.
	LicenseHeader string

	// Namespace holds the parser types.
	Namespace string

	// HEKNamespace holds the endian-templated layout types. It is a
	// sibling of the last component of Namespace.
	HEKNamespace string

	// GuardPrefix is prepended to a record name to form its opt-in
	// guard symbol.
	GuardPrefix string
}

// WithDefaults fills empty settings with the defaults.
func (s Settings) WithDefaults() Settings {
	if s.LicenseHeader == "" {
		s.LicenseHeader = DefaultLicenseHeader
	}
	if s.Namespace == "" {
		s.Namespace = DefaultNamespace
	}
	if s.HEKNamespace == "" {
		s.HEKNamespace = DefaultHEKNamespace
	}
	if s.GuardPrefix == "" {
		s.GuardPrefix = DefaultGuardPrefix
	}
	return s
}

// Guard returns the symbol a consumer defines to include the declaration
// of record from the aggregate header.
func (s Settings) Guard(record string) string {
	return s.GuardPrefix + record
}

// root returns Namespace without its last component ("" for a single
// component).
func (s Settings) root() string {
	index := strings.LastIndex(s.Namespace, "::")
	if index < 0 {
		return ""
	}
	return s.Namespace[:index]
}

// qualifiedHEK returns the fully qualified layout namespace.
func (s Settings) qualifiedHEK() string {
	if root := s.root(); root != "" {
		return root + "::" + s.HEKNamespace
	}
	return s.HEKNamespace
}

// includeGuard derives a header include guard from the root namespace
// and a file name.
func (s Settings) includeGuard(parts ...string) string {
	components := strings.Split(s.root(), "::")
	components = append(components, parts...)
	var b strings.Builder
	for _, component := range components {
		if component == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("__")
		}
		for _, r := range component {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

// writeHeader writes the license and generated-file notice.
func (s Settings) writeHeader(stream *Stream) {
	for _, line := range strings.Split(strings.TrimRight(s.LicenseHeader, "\n"), "\n") {
		if line == "" {
			stream.Line("//")
			continue
		}
		stream.Line("// %s", line)
	}
	stream.Blank()
	for _, line := range strings.Split(generatedNotice, "\n") {
		stream.Line("// %s", line)
	}
	stream.Blank()
}
