// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// HintSelectMsg reports the picked hint by index.
type HintSelectMsg struct {
	Index int
}

// HintsCloseMsg reports that the hints panel was dismissed.
type HintsCloseMsg struct{}

// HintsPanel is a row of quick messages above the input.
type HintsPanel struct {
	items    []string
	selected int
	theme    *styles.Theme
}

// NewHintsPanel creates a panel over items.
func NewHintsPanel(items []string, theme *styles.Theme) *HintsPanel {
	return &HintsPanel{items: items, theme: theme}
}

// Reset moves the cursor to the first hint.
func (h *HintsPanel) Reset() {
	h.selected = 0
}

// Selected returns the highlighted index.
func (h *HintsPanel) Selected() int {
	return h.selected
}

// Update handles navigation. Number keys pick a hint directly.
func (h *HintsPanel) Update(msg tea.Msg) (*HintsPanel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(h.items) == 0 {
		return h, nil
	}

	switch key := km.String(); key {
	case "esc", "ctrl+t":
		return h, func() tea.Msg { return HintsCloseMsg{} }
	case "left", "up", "shift+tab":
		h.selected = (h.selected - 1 + len(h.items)) % len(h.items)
	case "right", "down", "tab":
		h.selected = (h.selected + 1) % len(h.items)
	case "enter":
		idx := h.selected
		return h, func() tea.Msg { return HintSelectMsg{Index: idx} }
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(h.items) {
				h.selected = idx
				return h, func() tea.Msg { return HintSelectMsg{Index: idx} }
			}
		}
	}
	return h, nil
}

// View renders the hints as a row of chips.
func (h *HintsPanel) View() string {
	chips := make([]string, 0, len(h.items))
	for i, item := range h.items {
		label := strings.TrimSpace(item)
		if i == h.selected {
			chips = append(chips, h.theme.PanelItemSelected.Render(label))
			continue
		}
		chips = append(chips, h.theme.PanelItem.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, chips...)
	title := h.theme.PanelTitle.Render("Try asking")
	return h.theme.PanelBox.Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}
