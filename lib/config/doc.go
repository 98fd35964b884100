// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional YAML configuration for tagforge.
//
// Configuration comes from a single file named by the --config flag (via
// [LoadFile]) or the TAGFORGE_CONFIG environment variable (via [Load]).
// There is no discovery: with neither set, [Load] returns [Default].
// Unknown keys are errors, so a typo cannot silently fall back to a
// default and change generated output.
//
// ${VAR} and ${VAR:-default} patterns are expanded in the manifest path
// after loading. Nothing else reads the environment.
//
// Command-line flags override file values; see cmd/tagforge.
//
// This package depends on no other tagforge packages.
package config
