// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package generate runs a full compilation: it loads schema documents,
// expands reference classes, resolves the emission order, and writes
// every generated file.
//
// A run writes, in order:
//
//   - the shared definitions header (enum, bitfield, and layout types)
//   - enum.cpp and bitfield.cpp in the record directory
//   - one <Record>.cpp per record, in resolved order
//   - the aggregate parser header
//   - the manifest, when one is requested
//
// Schema errors are detected while loading, before anything is written.
// An I/O failure part way through leaves earlier files in place.
//
// [Compile] stops after resolution and is what the inspection commands
// build on; [Compilation.Record] runs the passes for a single record in
// memory.
package generate
