// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package depgraph computes the emission order of records so that every
// record follows the records it structurally depends on.
//
// A record depends on, in this order:
//
//   - its inherits parent
//   - the target record of every TagReflexive (nested sequence) field
//   - the target record of every Index field that names one
//
// [Resolve] walks the catalog's records in load order and inserts each
// one depth-first: dependencies are resolved recursively, then the record
// is appended together with its deduplicated dependency list. A record
// already in the order is skipped.
//
// A dependency naming a record with no declaration is dropped from the
// dependency list. The sentinel [definition.PredictedResource] is
// dropped silently; any other missing name logs a warning. Neither is
// fatal.
//
// Dependency discovery always scans the record whose node is being
// resolved, passed explicitly down the recursion, never a record from an
// enclosing call.
//
// Cycles are not detected. Records are DAG-ordered by schema convention
// and a cyclic schema recurses without bound. The graph tracks which
// nodes are on the current resolution path ([Graph.InProgress]) so a
// cycle check can be added at one place without restructuring.
package depgraph
