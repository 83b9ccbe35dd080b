// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// =============================================================================
// LINK CONFIRMATION DIALOG
// =============================================================================

// Dialog texts.
const (
	LinkConfirmTitle = "Leave this site?"
	LinkConfirmBody  = "Would you like to leave this site to join our discord server?"
	LinkConfirmNo    = "No"
	LinkConfirmYes   = "Yes, join Discord"
)

// LinkConfirmMsg reports the user's answer.
type LinkConfirmMsg struct {
	Confirmed bool
}

// Button options
const (
	ButtonNo    = 0
	ButtonYes   = 1
	buttonCount = 2
)

// LinkConfirm asks before leaving for the community server.
type LinkConfirm struct {
	selected int
	theme    *styles.Theme
}

// NewLinkConfirm creates the dialog with "No" focused.
func NewLinkConfirm(theme *styles.Theme) *LinkConfirm {
	return &LinkConfirm{theme: theme, selected: ButtonNo}
}

// Reset focuses "No" again.
func (d *LinkConfirm) Reset() {
	d.selected = ButtonNo
}

// Selected returns the focused button.
func (d *LinkConfirm) Selected() int {
	return d.selected
}

// Update handles key events for the dialog.
func (d *LinkConfirm) Update(msg tea.Msg) (*LinkConfirm, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch km.String() {
	case "left", "h", "shift+tab":
		d.selected = (d.selected - 1 + buttonCount) % buttonCount
	case "right", "l", "tab":
		d.selected = (d.selected + 1) % buttonCount
	case "enter", " ":
		return d, answer(d.selected == ButtonYes)
	case "y":
		return d, answer(true)
	case "n", "esc":
		return d, answer(false)
	}
	return d, nil
}

func answer(yes bool) tea.Cmd {
	return func() tea.Msg { return LinkConfirmMsg{Confirmed: yes} }
}

// View renders the dialog box.
func (d *LinkConfirm) View() string {
	no, yes := d.theme.Button, d.theme.Button
	if d.selected == ButtonYes {
		yes = d.theme.ButtonActive
	} else {
		no = d.theme.ButtonActive
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		no.Render(LinkConfirmNo), "  ", yes.Render(LinkConfirmYes))

	content := lipgloss.JoinVertical(lipgloss.Left,
		d.theme.ModalTitle.Render(LinkConfirmTitle),
		"",
		d.theme.ModalBody.Width(44).Render(LinkConfirmBody),
		"",
		buttons,
	)
	return d.theme.ModalBox.Render(content)
}
