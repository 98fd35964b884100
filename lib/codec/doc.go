// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used for tagforge's binary
// artifacts.
//
// Generated sources are text; the only binary artifact is the
// generation manifest, which must encode identically for identical runs
// so two manifests can be compared byte for byte. The encoder therefore
// uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types encoded here use `cbor` struct tags. Types that are also shown
// as JSON (for example by `tagforge verify --json`) use `json` tags,
// which fxamacker/cbor reads as a fallback. Never put both on one field.
package codec
