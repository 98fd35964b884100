// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package browser is an interactive terminal view of a resolved schema:
// a record list on the left, the selected record's members on the
// right.
//
// The list is in emission order. Pressing / starts a fuzzy filter over
// record names; matches are ranked by score and the matched characters
// are highlighted. Tab moves focus between the list and the detail
// pane. The model is a plain bubbletea [tea.Model] and is driven in
// tests by calling Update directly.
package browser
