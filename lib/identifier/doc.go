// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package identifier turns free-text schema labels into identifiers that
// are safe to use as generated member and constant names.
//
// [Normalize] replaces spaces and hyphens with underscores and drops
// apostrophes and parentheses. When preserveLeadingDigit is false, a
// label whose first character is a digit gets a leading underscore so
// the result never starts with a digit. Enum options keep their leading
// digits (they are always emitted with an enum-type prefix); bitfield
// labels and record member names do not.
//
// No uniqueness check is performed. Two labels in the same enum,
// bitfield, or record that normalize to the same identifier produce
// colliding generated names; schema authors must keep labels distinct.
//
// This package has no dependencies.
package identifier
