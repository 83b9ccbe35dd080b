// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/ui/components"
)

// emptyThreadText is shown before the first message.
const emptyThreadText = "Say hi to zap, or press ctrl+t for ideas."

// View renders the chat screen.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	st := m.ctrl.State()
	switch {
	case st.Loading:
		return m.loading.View()
	case st.CredentialModalOpen:
		return m.overlay(m.credential.View())
	case st.LinkConfirmOpen:
		return m.overlay(m.confirm.View())
	}

	parts := []string{
		m.header.View(),
		m.viewport.View(),
		m.renderTyping(st),
	}
	if st.PaletteOpen {
		parts = append(parts, m.palette.View())
	}
	if st.HintsOpen {
		parts = append(parts, m.hints.View())
	}
	if chips := m.status.Attachments(st.Attachments, m.width); chips != "" {
		parts = append(parts, chips)
	}
	parts = append(parts, m.renderInput(st), m.renderStatus(st))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// overlay centers a modal on the screen.
func (m Model) overlay(box string) string {
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderMessages renders the whole thread for the viewport.
func (m Model) renderMessages() string {
	msgs := m.ctrl.Log().Messages()
	if len(msgs) == 0 {
		return m.theme.ShortcutDesc.Render(emptyThreadText)
	}

	width := m.viewport.Width - 1
	if width < 20 {
		width = 20
	}
	latest := m.latestFileID()

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		b := components.NewMessageBubble(msg, m.theme, m.markdown)
		b.Width = width
		b.ShowTimestamp = m.opts.ShowTimestamps
		b.Selected = msg.HasFile() && msg.ID == latest
		blocks = append(blocks, b.View())
	}
	return strings.Join(blocks, bubbleGap)
}

func (m Model) latestFileID() string {
	files := m.ctrl.Log().Files()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1].ID
}

// renderTyping renders the typing indicator row, blank when idle so the
// layout does not jump.
func (m Model) renderTyping(st conversation.State) string {
	if !st.Typing() {
		return ""
	}
	return " " + m.typing.View()
}

// renderInput renders the input box and the send button.
func (m Model) renderInput(st conversation.State) string {
	send := m.theme.SendButtonDisabled.Render(sendLabel)
	if st.CanSend() {
		send = m.theme.SendButton.Render(sendLabel)
	}
	box := m.theme.InputBox.Width(m.input.Width + 4).Render(m.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, box, " ", send)
}

// renderStatus renders the notice when there is one, otherwise key help.
func (m Model) renderStatus(st conversation.State) string {
	if st.Notice != "" {
		return m.status.Notice(st.Notice, m.width)
	}
	return m.status.Shortcuts(shortcuts(m.keys.ShortHelp()), m.width)
}
