// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// Header texts.
const (
	HeaderTitle    = "Final Site"
	HeaderSubtitle = "Chat with Zap, our AI assistant"
	BadgeDemo      = "(Demo Mode)"
	BadgeAI        = "(AI Enabled)"
)

// Header shows the site title and whether replies are canned or AI backed.
type Header struct {
	width    int
	demoMode bool
	theme    *styles.Theme
}

// NewHeader creates a header in demo mode.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme, demoMode: true}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetDemoMode switches the badge.
func (h *Header) SetDemoMode(demo bool) {
	h.demoMode = demo
}

// Badge returns the plain badge text.
func (h *Header) Badge() string {
	if h.demoMode {
		return BadgeDemo
	}
	return BadgeAI
}

// View renders the header.
func (h *Header) View() string {
	badge := h.theme.BadgeAI.Render(BadgeAI)
	if h.demoMode {
		badge = h.theme.BadgeDemo.Render(BadgeDemo)
	}

	title := h.theme.HeaderTitle.Render(HeaderTitle)
	subtitle := h.theme.ShortcutDesc.Render(HeaderSubtitle+" ") + badge
	content := lipgloss.JoinVertical(lipgloss.Center, title, subtitle)

	style := h.theme.Header
	if h.width > 0 {
		style = style.Width(h.width).Align(lipgloss.Center)
	}
	return style.Render(content)
}
