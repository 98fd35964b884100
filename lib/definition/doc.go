// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package definition holds the in-memory model of tag definitions: the
// enums, bitfields, and records ("structs") declared by schema
// documents, and the [Catalog] that indexes them in load order.
//
// Values in this package are built once by lib/tagdef and then handed
// stage to stage (class expansion, dependency resolution, decoration,
// generation). The catalog preserves document order and, within a
// document, declaration order; every consumer iterates the slices, never
// the lookup maps, so generated output is deterministic.
//
// Field types are kept as the raw tokens used in schema documents
// ("uint16", "TagReflexive", "Point3D", ...). [Field.Kind] classifies a
// token into one of the [FieldKind] categories.
package definition
