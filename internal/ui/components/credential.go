// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// =============================================================================
// CREDENTIAL MODAL
// =============================================================================

// Modal texts.
const (
	CredentialTitle       = "🤖 Enable AI Chat"
	CredentialPrompt      = "To enable AI responses, please enter your Cohere API key:"
	CredentialPlaceholder = "Your Cohere API key..."
	CredentialNoteStored  = "• Your key is stored locally and never shared"
	CredentialNoteChange  = "• You can change it anytime in settings"
	CredentialSkip        = "Skip (Demo Mode)"
	CredentialSave        = "Save & Continue"
)

// CredentialSubmitMsg carries the entered value. The controller trims it
// and ignores empty values.
type CredentialSubmitMsg struct {
	Value string
}

// CredentialSkipMsg reports that the modal was dismissed.
type CredentialSkipMsg struct{}

// Focus targets inside the modal.
const (
	focusInput = iota
	focusSkip
	focusSave
	focusCount
)

// CredentialModal collects the optional API key.
type CredentialModal struct {
	input     textinput.Model
	focus     int
	dashboard string
	theme     *styles.Theme
}

// NewCredentialModal creates the modal with a masked input.
func NewCredentialModal(theme *styles.Theme) *CredentialModal {
	ti := textinput.New()
	ti.Placeholder = CredentialPlaceholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = ""
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)

	return &CredentialModal{input: ti, dashboard: conversation.DashboardURL, theme: theme}
}

// SetDashboardURL changes where the modal says keys can be created.
func (m *CredentialModal) SetDashboardURL(url string) {
	if url != "" {
		m.dashboard = url
	}
}

// Open clears the input and focuses it.
func (m *CredentialModal) Open() tea.Cmd {
	m.input.SetValue("")
	m.focus = focusInput
	return m.input.Focus()
}

// Value returns the current draft.
func (m *CredentialModal) Value() string {
	return m.input.Value()
}

// Update handles key events for the modal.
func (m *CredentialModal) Update(msg tea.Msg) (*CredentialModal, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, func() tea.Msg { return CredentialSkipMsg{} }

		case "tab", "down":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + focusCount) % focusCount)
			return m, nil

		case "enter":
			if m.focus == focusSkip {
				return m, func() tea.Msg { return CredentialSkipMsg{} }
			}
			value := m.input.Value()
			return m, func() tea.Msg { return CredentialSubmitMsg{Value: value} }
		}
	}

	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *CredentialModal) setFocus(f int) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// View renders the modal box.
func (m *CredentialModal) View() string {
	skip, save := m.theme.Button, m.theme.Button
	switch m.focus {
	case focusSkip:
		skip = m.theme.ButtonActive
	case focusSave:
		save = m.theme.ButtonActive
	}

	inputBox := m.theme.InputBox
	if m.focus == focusInput {
		inputBox = inputBox.BorderForeground(styles.Violet)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.ModalTitle.Render(CredentialTitle),
		"",
		m.theme.ModalBody.Width(46).Render(CredentialPrompt),
		inputBox.Width(46).Render(m.input.View()),
		m.theme.ModalMuted.Render("• Get your API key from ")+styles.RenderLink(m.dashboard),
		m.theme.ModalMuted.Render(CredentialNoteStored),
		m.theme.ModalMuted.Render(CredentialNoteChange),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, skip.Render(CredentialSkip), "  ", save.Render(CredentialSave)),
	)
	return m.theme.ModalBox.Render(content)
}
