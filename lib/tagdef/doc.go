// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tagdef loads tag definition documents into a
// [definition.Catalog].
//
// A document is a JSON array of declarations, each an object whose
// "type" key is "enum", "bitfield", or "struct". Documents are authored
// as JSONC (JSON extended with // and /* */ comments and trailing
// commas); comments are stripped before decoding.
//
// Loading normalizes labels with lib/identifier: enum options keep a
// leading digit, bitfield labels and record member names get an
// underscore prefix instead. Padding fields get no member name.
//
// Loading is all-or-nothing. The first [SchemaViolation] (an unknown
// declaration kind, a field that is both cache_only and has a default,
// a malformed document) aborts the load and no catalog is returned.
//
// The typical flow:
//
//  1. Load: paths → catalog (documents in argument order)
//  2. lib/classhierarchy: expand reference class lists
//  3. lib/depgraph: resolve the emission order
package tagdef
