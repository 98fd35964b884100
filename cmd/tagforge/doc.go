// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Tagforge compiles tag definition documents into C++ parser sources.
//
// The positional form generates everything:
//
//	tagforge [flags] <declarations-out> <aggregate-declarations-out> <per-record-output-dir> <extract-hidden:on|off> <schema-doc>...
//
// It writes the shared definitions header, enum.cpp and bitfield.cpp,
// one source per record, and the aggregate parser header. With
// --manifest (or manifest.path in the config file) it also writes a
// manifest of every generated file that `tagforge verify` checks.
//
// Subcommands inspect a schema without writing sources: order, show,
// catalog, and browse. A subcommand runs only when the first positional
// argument is exactly its name.
package main
