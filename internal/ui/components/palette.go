// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
	"github.com/jeranaias/zap-tui/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// PaletteSelectMsg reports the picked suggestion by its index in
// conversation.Suggestions.
type PaletteSelectMsg struct {
	Index int
}

// PaletteCloseMsg reports that the palette was dismissed.
type PaletteCloseMsg struct{}

// =============================================================================
// COMMAND PALETTE
// =============================================================================

// CommandPalette lists the command suggestions with a fuzzy filter.
type CommandPalette struct {
	input    textinput.Model
	items    []conversation.Suggestion
	filtered []int
	selected int
	width    int
	theme    *styles.Theme
}

// NewCommandPalette creates a palette over items.
func NewCommandPalette(items []conversation.Suggestion, theme *styles.Theme) *CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Filter commands..."
	ti.Prompt = "/ "
	ti.CharLimit = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Violet).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	cp := &CommandPalette{input: ti, items: items, theme: theme, width: 56}
	cp.refilter()
	return cp
}

// Reset clears the filter and focuses it.
func (cp *CommandPalette) Reset() tea.Cmd {
	cp.input.SetValue("")
	cp.refilter()
	return cp.input.Focus()
}

// SetWidth sets the outer width of the palette box.
func (cp *CommandPalette) SetWidth(width int) {
	if width > 0 {
		cp.width = width
	}
}

// Selected returns the index into items of the highlighted entry, or -1.
func (cp *CommandPalette) Selected() int {
	if cp.selected < 0 || cp.selected >= len(cp.filtered) {
		return -1
	}
	return cp.filtered[cp.selected]
}

// Update handles navigation and filtering.
func (cp *CommandPalette) Update(msg tea.Msg) (*CommandPalette, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+p":
			return cp, func() tea.Msg { return PaletteCloseMsg{} }

		case "enter":
			idx := cp.Selected()
			if idx < 0 {
				return cp, nil
			}
			return cp, func() tea.Msg { return PaletteSelectMsg{Index: idx} }

		case "up", "shift+tab":
			cp.move(-1)
			return cp, nil

		case "down", "tab", "ctrl+n":
			cp.move(1)
			return cp, nil
		}
	}

	prev := cp.input.Value()
	var cmd tea.Cmd
	cp.input, cmd = cp.input.Update(msg)
	if cp.input.Value() != prev {
		cp.refilter()
	}
	return cp, cmd
}

func (cp *CommandPalette) move(delta int) {
	n := len(cp.filtered)
	if n == 0 {
		return
	}
	cp.selected = (cp.selected + delta + n) % n
}

func (cp *CommandPalette) refilter() {
	query := strings.TrimPrefix(strings.TrimSpace(cp.input.Value()), "/")
	cp.selected = 0
	cp.filtered = cp.filtered[:0]
	if query == "" {
		for i := range cp.items {
			cp.filtered = append(cp.filtered, i)
		}
		return
	}
	fields := make([][]string, len(cp.items))
	for i, s := range cp.items {
		fields[i] = []string{s.Label, strings.TrimPrefix(s.Prefix, "/"), s.Description}
	}
	for _, m := range FuzzyRank(query, fields) {
		cp.filtered = append(cp.filtered, m.Index)
	}
}

// View renders the palette box.
func (cp *CommandPalette) View() string {
	inner := cp.width - 4
	if inner < 20 {
		inner = 20
	}
	cp.input.Width = inner - 4

	lines := []string{cp.theme.PanelTitle.Render("Commands"), cp.input.View()}
	if len(cp.filtered) == 0 {
		lines = append(lines, cp.theme.PaletteDesc.Italic(true).Render("No matching commands"))
	}
	for row, idx := range cp.filtered {
		s := cp.items[idx]
		label := s.Icon + " " + s.Label
		desc := util.TruncateWidth(s.Description, inner-util.Width(label)-5)
		line := util.PadWidth(label+"  "+desc, inner-2)
		if row == cp.selected {
			lines = append(lines, cp.theme.PanelItemSelected.Render(line))
			continue
		}
		lines = append(lines, cp.theme.PanelItem.Render(
			cp.theme.PaletteLabel.Render(label)+"  "+cp.theme.PaletteDesc.Render(desc)))
	}
	lines = append(lines, cp.theme.ShortcutDesc.Render("↑/↓ navigate  enter select  esc close"))

	return cp.theme.PanelBox.Width(inner).Render(strings.Join(lines, "\n"))
}
