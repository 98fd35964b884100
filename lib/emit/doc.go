// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package emit holds the generation passes that turn a resolved record
// into C++ source, and the shared units (layout definitions, enum and
// bitfield helpers) that every record's source depends on.
//
// Each record gets one [Unit] with two [Stream]s: Declaration, which ends
// up inside the record's guarded struct declaration in the aggregate
// parser header, and Definition, which becomes the record's own .cpp
// file. A [Pass] appends to both streams and nothing else; passes do not
// share state and return nothing. [DefaultPasses] lists the passes in the
// order the orchestrator must run them.
//
// Every pass reads the same [Context]: the record, its flattened field
// descriptors, the catalog (for enum and bitfield lookups), the resolved
// order (for index bounds), and the extract-hidden switch. Capability
// flags on the record decide which hand-written hooks are called.
package emit
