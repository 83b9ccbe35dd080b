// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
	"github.com/jeranaias/zap-tui/internal/util"
)

// Shortcut is a key and what it does, shown in the status line.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusLine renders the notice, the attachment chips and the shortcut help
// below the input.
type StatusLine struct {
	theme *styles.Theme
}

// NewStatusLine creates a status line renderer.
func NewStatusLine(theme *styles.Theme) *StatusLine {
	return &StatusLine{theme: theme}
}

// Attachments renders the pending attachment names as numbered chips so
// they can be removed by number.
func (s *StatusLine) Attachments(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	chips := make([]string, 0, len(names))
	for i, name := range names {
		chips = append(chips, s.theme.Attachment.Render(fmt.Sprintf("%d 📎 %s", i+1, util.TruncateWidth(name, 24))))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(chips, " "))
}

// Notice renders the status notice, or nothing.
func (s *StatusLine) Notice(text string, width int) string {
	if text == "" {
		return ""
	}
	return s.theme.Notice.Render(util.TruncateWidth(text, width))
}

// Shortcuts renders the key help, dropping entries that do not fit.
func (s *StatusLine) Shortcuts(items []Shortcut, width int) string {
	var parts []string
	used := 0
	for _, it := range items {
		w := util.Width(it.Key) + 1 + util.Width(it.Desc) + 2
		if width > 0 && used+w > width {
			break
		}
		used += w
		parts = append(parts, s.theme.ShortcutKey.Render(it.Key)+" "+s.theme.ShortcutDesc.Render(it.Desc))
	}
	return strings.Join(parts, "  ")
}
