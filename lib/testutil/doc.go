// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tagforge packages.
//
// [WriteFile] and [ReadFile] wrap file I/O in test temp directories.
// [CaptureLogger] returns an slog.Logger whose records are kept in
// memory so tests can assert on warnings (dangling dependencies, for
// example) without scraping stderr. [RequireContains] and
// [RequireNotContains] check generated source text.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no tagforge-internal dependencies.
package testutil
