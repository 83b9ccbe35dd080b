// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/model"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
	"github.com/jeranaias/zap-tui/internal/util"
)

// =============================================================================
// MARKDOWN
// =============================================================================

// MarkdownRenderer renders assistant replies with glamour. The underlying
// renderer is rebuilt only when the style or wrap width changes.
type MarkdownRenderer struct {
	style   string
	enabled bool
	width   int
	r       *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer for a glamour standard style.
// When enabled is false, Render only word-wraps.
func NewMarkdownRenderer(style string, enabled bool) *MarkdownRenderer {
	return &MarkdownRenderer{style: style, enabled: enabled}
}

// SetStyle switches the glamour style.
func (m *MarkdownRenderer) SetStyle(style string) {
	if style != m.style {
		m.style = style
		m.r = nil
	}
}

// SetEnabled toggles markdown rendering.
func (m *MarkdownRenderer) SetEnabled(on bool) {
	m.enabled = on
}

// Render renders content wrapped at width cells.
func (m *MarkdownRenderer) Render(content string, width int) string {
	if !m.enabled || width < 10 {
		return wordWrap(content, width)
	}
	if m.r == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.enabled = false
			return wordWrap(content, width)
		}
		m.r, m.width = r, width
	}
	out, err := m.r.Render(content)
	if err != nil {
		return wordWrap(content, width)
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one message of the thread.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	Selected      bool
	theme         *styles.Theme
	markdown      *MarkdownRenderer
}

// NewMessageBubble creates a bubble. markdown may be nil.
func NewMessageBubble(msg model.Message, theme *styles.Theme, markdown *MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		markdown:      markdown,
	}
}

// View renders the bubble aligned within Width: user messages on the
// right, assistant messages on the left.
func (b *MessageBubble) View() string {
	if b.Message.HasFile() {
		return b.renderFile()
	}
	if b.Message.IsUser() {
		return b.renderUser()
	}
	return b.renderAssistant()
}

// maxBubbleWidth leaves a quarter of the line free so the two sides read
// as a conversation.
func (b *MessageBubble) maxBubbleWidth() int {
	w := b.Width * 3 / 4
	if w < 20 {
		w = 20
	}
	return w
}

func (b *MessageBubble) renderHeader(align lipgloss.Position) string {
	parts := []string{b.theme.Sender.Render(b.Message.Role.DisplayName())}
	if b.ShowTimestamp {
		parts = append(parts, b.theme.Timestamp.Render(b.Message.FormatTime()))
	}
	return lipgloss.PlaceHorizontal(b.Width, align, strings.Join(parts, " "))
}

func (b *MessageBubble) renderUser() string {
	inner := b.maxBubbleWidth() - 4
	text := wordWrap(b.Message.Content, inner)
	bubble := b.theme.UserBubble.Render(text)
	return lipgloss.JoinVertical(lipgloss.Left,
		b.renderHeader(lipgloss.Right),
		lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, bubble),
	)
}

func (b *MessageBubble) renderAssistant() string {
	inner := b.maxBubbleWidth() - 4
	var text string
	if b.markdown != nil {
		text = b.markdown.Render(b.Message.Content, inner)
	} else {
		text = wordWrap(b.Message.Content, inner)
	}
	bubble := b.theme.AssistantBubble.Render(text)
	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(lipgloss.Left), bubble)
}

func (b *MessageBubble) renderFile() string {
	card := NewFileCard(*b.Message.File, b.theme)
	card.Selected = b.Selected
	card.Width = b.maxBubbleWidth()
	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(lipgloss.Left), card.View())
}

// =============================================================================
// FILE CARD
// =============================================================================

// FileCard shows an offered file with its download affordance.
type FileCard struct {
	File     model.Attachment
	Width    int
	Selected bool
	theme    *styles.Theme
}

// NewFileCard creates a card for file.
func NewFileCard(file model.Attachment, theme *styles.Theme) *FileCard {
	return &FileCard{File: file, Width: 40, theme: theme}
}

// View renders the card.
func (c *FileCard) View() string {
	inner := c.Width - 4
	if inner < 16 {
		inner = 16
	}
	name := c.theme.FileName.Render("📁 " + util.TruncateWidth(c.File.Name, inner-3))
	meta := c.theme.FileMeta.Render(util.TruncateWidth(c.File.Type+" · "+c.File.Size, inner))

	button := c.theme.DownloadButton.Render("⬇ Download")
	hint := c.theme.ShortcutDesc.Render(" ctrl+d")
	box := c.theme.FileCard
	if c.Selected {
		box = box.BorderForeground(styles.Sky)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, name, meta, button+hint))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// wordWrap wraps text at width cells, keeping existing line breaks.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var sb strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			if util.Width(current)+1+util.Width(w) <= width {
				current += " " + w
				continue
			}
			sb.WriteString(current)
			sb.WriteString("\n")
			current = w
		}
		sb.WriteString(current)
	}
	return sb.String()
}
