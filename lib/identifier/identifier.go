// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identifier

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var labelReplacer = strings.NewReplacer(
	" ", "_",
	"'", "",
	"-", "_",
	"(", "",
	")", "",
)

// Normalize converts label into an identifier. See the package
// documentation for the exact rules.
func Normalize(label string, preserveLeadingDigit bool) string {
	name := labelReplacer.Replace(label)
	if preserveLeadingDigit || name == "" {
		return name
	}
	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(first) {
		return "_" + name
	}
	return name
}

// EnumOption normalizes an enum option label. Leading digits are kept.
func EnumOption(label string) string {
	return Normalize(label, true)
}

// Member normalizes a bitfield label or record field name. A leading
// digit is prefixed with an underscore.
func Member(label string) string {
	return Normalize(label, false)
}
