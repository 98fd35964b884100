// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/fuzzy"
)

// Focus is the region receiving key input.
type Focus int

const (
	FocusList Focus = iota
	FocusDetail
	FocusFilter
)

// row is one visible list row: an entry and the filter's matched rune
// positions in its name.
type row struct {
	entry     int
	positions []int
}

// Model is the browser's bubbletea model.
type Model struct {
	entries []Entry
	rows    []row
	byName  map[string]int

	cursor int
	offset int

	focus      Focus
	priorFocus Focus
	filter     string

	viewport viewport.Model
	matcher  *fuzzy.Matcher
	keys     KeyMap
	theme    Theme
	renderer *lipgloss.Renderer

	width  int
	height int

	// shown is the entry whose detail is in the viewport, or -1.
	shown int
}

// NewModel returns a browser over entries, in the order given.
func NewModel(entries []Entry) Model {
	// The browser always draws to a terminal, so the profile is fixed
	// rather than detected from the environment.
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	model := Model{
		entries:  entries,
		byName:   make(map[string]int, len(entries)),
		viewport: viewport.New(0, 0),
		matcher:  fuzzy.NewMatcher(),
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		renderer: renderer,
		shown:    -1,
	}
	for index, entry := range entries {
		if _, exists := model.byName[entry.Name]; !exists {
			model.byName[entry.Name] = index
		}
	}
	model.applyFilter()
	return model
}

// Run shows the browser full-screen until the user quits.
func Run(entries []Entry) error {
	program := tea.NewProgram(NewModel(entries), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Selected returns the name of the record under the cursor, or "" when
// the filter matches nothing.
func (model Model) Selected() string {
	if model.cursor >= len(model.rows) {
		return ""
	}
	return model.entries[model.rows[model.cursor].entry].Name
}

// Visible returns the names of the listed records, in list order.
func (model Model) Visible() []string {
	names := make([]string, len(model.rows))
	for index, row := range model.rows {
		names[index] = model.entries[row.entry].Name
	}
	return names
}

// Focus returns the region receiving key input.
func (model Model) Focus() Focus {
	return model.focus
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.viewport.Width = model.detailWidth()
		model.viewport.Height = model.bodyHeight()
		model.shown = -1
		model.syncDetail()
		model.ensureCursorVisible()
		return model, nil

	case tea.KeyMsg:
		if model.focus == FocusFilter {
			return model.handleFilterKeys(message)
		}
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.FilterActivate):
			model.priorFocus = model.focus
			model.focus = FocusFilter
			return model, nil
		case key.Matches(message, model.keys.FilterClear):
			if model.filter != "" {
				model.filter = ""
				model.applyFilter()
			}
			return model, nil
		case key.Matches(message, model.keys.FocusToggle):
			if model.focus == FocusList {
				model.focus = FocusDetail
			} else {
				model.focus = FocusList
			}
			return model, nil
		}
		if model.focus == FocusDetail {
			model.handleDetailKeys(message)
		} else {
			model.handleListKeys(message)
		}
		return model, nil
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		// Esc clears the text first, then leaves filter mode.
		if model.filter != "" {
			model.filter = ""
			model.applyFilter()
		} else {
			model.focus = model.priorFocus
		}

	case message.Type == tea.KeyEnter:
		model.focus = FocusList

	case message.Type == tea.KeyBackspace:
		if model.filter != "" {
			runes := []rune(model.filter)
			model.filter = string(runes[:len(runes)-1])
			model.applyFilter()
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		if message.Type == tea.KeySpace {
			model.filter += " "
		}
		model.filter += string(message.Runes)
		model.applyFilter()
	}
	return model, nil
}

func (model *Model) handleListKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.rows)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PageUp):
		model.cursor = max(model.cursor-model.bodyHeight(), 0)
	case key.Matches(message, model.keys.PageDown):
		model.cursor = max(min(model.cursor+model.bodyHeight(), len(model.rows)-1), 0)
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		model.cursor = max(len(model.rows)-1, 0)
	case message.Type == tea.KeyEnter:
		model.focus = FocusDetail
	}
	model.ensureCursorVisible()
	model.syncDetail()
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.viewport.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.viewport.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.viewport.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.viewport.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		model.viewport.GotoTop()
	case key.Matches(message, model.keys.End):
		model.viewport.GotoBottom()
	}
}

// applyFilter rebuilds the visible rows. An empty filter lists every
// entry in order; otherwise rows are ranked by match score.
func (model *Model) applyFilter() {
	model.rows = make([]row, 0, len(model.entries))
	if model.filter == "" {
		for index := range model.entries {
			model.rows = append(model.rows, row{entry: index})
		}
	} else {
		names := make([]string, len(model.entries))
		for index, entry := range model.entries {
			names[index] = entry.Name
		}
		for _, match := range model.matcher.Filter(names, model.filter) {
			model.rows = append(model.rows, row{entry: model.byName[match.Text], positions: match.Positions})
		}
	}
	model.cursor = 0
	model.offset = 0
	model.syncDetail()
}

func (model *Model) ensureCursorVisible() {
	height := model.bodyHeight()
	if height <= 0 {
		return
	}
	if model.cursor < model.offset {
		model.offset = model.cursor
	}
	if model.cursor >= model.offset+height {
		model.offset = model.cursor - height + 1
	}
}

// syncDetail loads the selected entry into the viewport when the
// selection changed.
func (model *Model) syncDetail() {
	selected := -1
	if model.cursor < len(model.rows) {
		selected = model.rows[model.cursor].entry
	}
	if selected == model.shown {
		return
	}
	model.shown = selected
	if selected < 0 {
		model.viewport.SetContent("")
		return
	}
	model.viewport.SetContent(model.renderDetail(model.entries[selected], model.detailWidth()))
	model.viewport.GotoTop()
}

func (model Model) listWidth() int {
	return min(max(model.width/3, 16), 40)
}

func (model Model) detailWidth() int {
	return max(model.width-model.listWidth()-1, 0)
}

// bodyHeight is the height between the header and status lines.
func (model Model) bodyHeight() int {
	return max(model.height-2, 0)
}

func (model Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}

	header := model.renderer.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(ansi.Truncate(fmt.Sprintf(" tag definitions (%d/%d)", len(model.rows), len(model.entries)), model.width, "…"))

	separator := model.renderer.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("│\n", max(model.bodyHeight()-1, 0)) + "│")

	detail := model.renderer.NewStyle().
		Width(model.detailWidth()).
		Height(model.bodyHeight()).
		Render(model.viewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, model.renderList(), separator, detail)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, model.renderStatus())
}

func (model Model) renderList() string {
	width := model.listWidth()
	height := model.bodyHeight()
	normal := model.renderer.NewStyle().Foreground(model.theme.NormalText).Width(width)
	selected := model.renderer.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Bold(model.focus != FocusDetail).
		Width(width)

	lines := make([]string, 0, height)
	for index := model.offset; index < len(model.rows) && len(lines) < height; index++ {
		row := model.rows[index]
		text := " " + model.highlight(model.entries[row.entry].Name, row.positions)
		text = ansi.Truncate(text, width-1, "…")
		if index == model.cursor {
			lines = append(lines, selected.Render(text))
		} else {
			lines = append(lines, normal.Render(text))
		}
	}
	if len(model.rows) == 0 {
		lines = append(lines, model.renderer.NewStyle().Foreground(model.theme.FaintText).Width(width).Render(" no matches"))
	}
	return model.renderer.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// highlight styles the runes of name at positions.
func (model Model) highlight(name string, positions []int) string {
	if len(positions) == 0 {
		return name
	}
	match := model.renderer.NewStyle().Foreground(model.theme.MatchForeground).Bold(true)
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}
	var b strings.Builder
	for index, r := range []rune(name) {
		if matched[index] {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (model Model) renderStatus() string {
	style := model.renderer.NewStyle().Foreground(model.theme.HelpText)
	if model.focus == FocusFilter || model.filter != "" {
		cursor := ""
		if model.focus == FocusFilter {
			cursor = "▎"
		}
		return style.Foreground(model.theme.NormalText).Render(ansi.Truncate(" / "+model.filter+cursor, model.width, "…"))
	}
	var parts []string
	for _, binding := range model.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return style.Render(ansi.Truncate(" "+strings.Join(parts, " · "), model.width, "…"))
}

func (model Model) renderDetail(entry Entry, width int) string {
	title := model.renderer.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := model.renderer.NewStyle().Foreground(model.theme.FaintText)

	var lines []string
	lines = append(lines, title.Render(entry.Name))

	facts := []string{fmt.Sprintf("position %d", entry.Position)}
	if entry.Inherits != "" {
		facts = append(facts, "inherits "+entry.Inherits)
	}
	if entry.Document != "" {
		facts = append(facts, "from "+entry.Document)
	}
	lines = append(lines, faint.Render(strings.Join(facts, " · ")))
	if len(entry.Dependencies) > 0 {
		lines = append(lines, faint.Render("depends on "+strings.Join(entry.Dependencies, ", ")))
	}
	lines = append(lines, "")

	if len(entry.Members) == 0 {
		lines = append(lines, faint.Render("no members"))
	}
	nameWidth := 0
	for _, member := range entry.Members {
		nameWidth = max(nameWidth, len(member.Name))
	}
	for _, member := range entry.Members {
		line := fmt.Sprintf("%-*s  %s", nameWidth, member.Name, model.kindStyle(member.Kind).Render(member.Type))
		if member.Owner != entry.Name {
			line += faint.Render("  (" + member.Owner + ")")
		}
		lines = append(lines, line)
	}

	for index, line := range lines {
		if width > 0 {
			lines[index] = ansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

func (model Model) kindStyle(kind definition.FieldKind) lipgloss.Style {
	style := model.renderer.NewStyle()
	switch kind {
	case definition.FieldReference:
		return style.Foreground(model.theme.ReferenceColor)
	case definition.FieldSequence, definition.FieldIndex:
		return style.Foreground(model.theme.SequenceColor)
	case definition.FieldValue:
		return style.Foreground(model.theme.ValueColor)
	default:
		return style.Foreground(model.theme.NormalText)
	}
}
