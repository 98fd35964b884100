// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest records what a generation run read and wrote.
//
// A manifest lists the tool version, every input schema document, and
// every generated file, each with a BLAKE3 keyed digest. Inputs and
// outputs hash under different domain keys, so an input can never be
// mistaken for an output with the same bytes.
//
// The file format is a 4-byte magic ("TFM1"), a 1-byte compression tag,
// and the CBOR body (Core Deterministic Encoding, see lib/codec). For lz4
// and zstd the body is preceded by its uncompressed length as a 4-byte
// big-endian integer. Bodies that do not shrink are stored uncompressed
// regardless of the requested algorithm.
//
// Output paths are stored relative to the manifest's directory when
// possible, so two runs into the same layout produce byte-identical
// manifests and [Verify] works after the tree is moved.
package manifest
