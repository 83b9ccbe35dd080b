// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/zap-tui/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the chat screen.
type KeyMap struct {
	Send          key.Binding
	Palette       key.Binding
	Hints         key.Binding
	Attach        key.Binding
	Detach        key.Binding
	Download      key.Binding
	Settings      key.Binding
	DismissNotice key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "commands"),
		),
		Hints: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "hints"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "attach"),
		),
		Detach: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "detach"),
		),
		Download: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "download"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "API key"),
		),
		DismissNotice: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "up"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "down"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line, most useful
// first so narrow terminals keep the important ones.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Palette, k.Hints, k.Attach, k.Settings, k.Quit}
}

// shortcuts converts bindings to status line entries.
func shortcuts(bindings []key.Binding) []components.Shortcut {
	out := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
