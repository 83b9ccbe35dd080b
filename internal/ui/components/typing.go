// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// Typing indicator texts.
const (
	TypingName = "zap"
	TypingText = "Thinking"
)

// TypingIndicator shows "zap Thinking..." while a reply is pending.
type TypingIndicator struct {
	spinner spinner.Model
	theme   *styles.Theme
}

// NewTypingIndicator creates an indicator with animated dots.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = styles.TypingDots
	s.Style = theme.TypingText
	return TypingIndicator{spinner: s, theme: theme}
}

// Tick starts the animation.
func (t TypingIndicator) Tick() tea.Cmd {
	return t.spinner.Tick
}

// Update advances the animation.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator.
func (t TypingIndicator) View() string {
	return t.theme.TypingName.Render(TypingName) + " " +
		t.theme.TypingText.Render(TypingText) + t.spinner.View()
}
