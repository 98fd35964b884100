// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import "github.com/charmbracelet/lipgloss"

// Theme is the browser's color palette, in ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// MatchForeground colors the characters a filter matched.
	MatchForeground lipgloss.Color

	// Member kind colors in the detail pane.
	ReferenceColor lipgloss.Color
	SequenceColor  lipgloss.Color
	ValueColor     lipgloss.Color
}

// DefaultTheme is tuned for dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchForeground: lipgloss.Color("220"),

	ReferenceColor: lipgloss.Color("75"),
	SequenceColor:  lipgloss.Color("141"),
	ValueColor:     lipgloss.Color("114"),
}
