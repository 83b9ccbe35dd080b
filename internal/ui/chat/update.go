// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/config"
	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/ui/components"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// Layout constants. These must match the rendered heights in view.go.
const (
	inputHeight  = 3 // rounded border around one line
	typingHeight = 1
	statusHeight = 1
	maxPaletteW  = 64
	sendLabel    = "Send"
	bubbleGap    = "\n\n"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		st := m.ctrl.State()
		var cmd tea.Cmd
		if st.Loading {
			m.loading, cmd = m.loading.Update(msg)
			cmds = append(cmds, cmd)
		}
		if st.Typing() {
			m.typing, cmd = m.typing.Update(msg)
			cmds = append(cmds, cmd)
		}

	case EventMsg:
		cmds = append(cmds, m.runEffects(m.ctrl.Handle(msg.Event)))

	case ConfigUpdatedMsg:
		m.applyConfig(msg.Config)
		cmds = append(cmds, m.waitForConfig())

	case components.PaletteSelectMsg:
		m.ctrl.PickCommand(msg.Index)

	case components.PaletteCloseMsg:
		if m.ctrl.State().PaletteOpen {
			m.ctrl.TogglePalette()
		}

	case components.HintSelectMsg:
		m.ctrl.PickHint(msg.Index)

	case components.HintsCloseMsg:
		if m.ctrl.State().HintsOpen {
			m.ctrl.ToggleHints()
		}

	case components.LinkConfirmMsg:
		if msg.Confirmed {
			cmds = append(cmds, m.runEffects(m.ctrl.ConfirmLink()))
		} else {
			cmds = append(cmds, m.runEffects(m.ctrl.DeclineLink()))
		}

	case components.CredentialSubmitMsg:
		m.ctrl.SetCredentialDraft(msg.Value)
		cmds = append(cmds, m.runEffects(m.ctrl.SaveCredential()))

	case components.CredentialSkipMsg:
		m.ctrl.SkipCredential()

	default:
		// Cursor blink and similar input housekeeping.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quit = true
		m.ctrl.Close()
		return m, tea.Quit
	}

	st := m.ctrl.State()
	if st.Loading {
		return m, nil
	}

	var cmd tea.Cmd

	// Open overlays own the keyboard.
	switch {
	case st.CredentialModalOpen:
		m.credential, cmd = m.credential.Update(msg)
		m.ctrl.SetCredentialDraft(m.credential.Value())
		return m, cmd

	case st.LinkConfirmOpen:
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd

	case st.PaletteOpen:
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd

	case st.HintsOpen:
		m.hints, cmd = m.hints.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		if st.CanSend() {
			cmd = m.runEffects(m.ctrl.Send())
		}

	case key.Matches(msg, m.keys.Palette):
		m.ctrl.TogglePalette()

	case key.Matches(msg, m.keys.Hints):
		m.ctrl.ToggleHints()

	case key.Matches(msg, m.keys.Attach):
		name := m.ctrl.Attach()
		m.logger.Debug("attached placeholder file", "name", name)

	case key.Matches(msg, m.keys.Detach):
		if n := len(st.Attachments); n > 0 {
			m.ctrl.RemoveAttachment(n - 1)
		}

	case key.Matches(msg, m.keys.Download):
		if name := m.latestFile(); name != "" {
			cmd = m.runEffects(m.ctrl.DownloadFile(name))
		}

	case key.Matches(msg, m.keys.Settings):
		m.ctrl.OpenCredentialModal()

	case key.Matches(msg, m.keys.DismissNotice):
		m.ctrl.DismissNotice()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		m.viewport, cmd = m.viewport.Update(msg)

	default:
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetInput(m.input.Value())
	}

	return m, tea.Batch(cmd, m.sync())
}

// latestFile returns the name of the most recently offered file.
func (m Model) latestFile() string {
	files := m.ctrl.Log().Files()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1].File.Name
}

// =============================================================================
// STATE SYNC
// =============================================================================

// sync reconciles the widgets with the controller state after every
// update: overlays that just opened are reset and focused, the input
// mirrors the controller's buffer and the viewport follows the log.
func (m *Model) sync() tea.Cmd {
	st := m.ctrl.State()
	var cmds []tea.Cmd

	if st.Input != m.input.Value() {
		m.input.SetValue(st.Input)
		m.input.CursorEnd()
	}

	if st.CredentialModalOpen && !m.prev.CredentialModalOpen {
		cmds = append(cmds, m.credential.Open())
	}
	if st.LinkConfirmOpen && !m.prev.LinkConfirmOpen {
		m.confirm.Reset()
	}
	if st.PaletteOpen && !m.prev.PaletteOpen {
		cmds = append(cmds, m.palette.Reset())
	}
	if st.HintsOpen && !m.prev.HintsOpen {
		m.hints.Reset()
	}

	if st.ModalOpen() || st.PaletteOpen {
		m.input.Blur()
	} else if !m.input.Focused() {
		cmds = append(cmds, m.input.Focus())
	}

	if st.Typing() && !m.prev.Typing() {
		cmds = append(cmds, m.typing.Tick())
	}

	m.header.SetDemoMode(st.DemoMode())
	m.prev = st
	m.refreshViewport(st)
	return tea.Batch(cmds...)
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.ready = true

	m.header.SetWidth(msg.Width)
	m.loading.SetSize(msg.Width, msg.Height)

	paletteW := msg.Width - 2
	if paletteW > maxPaletteW {
		paletteW = maxPaletteW
	}
	m.palette.SetWidth(paletteW)

	inputW := msg.Width - lipgloss.Width(sendLabel) - 10
	if inputW < 10 {
		inputW = 10
	}
	m.input.Width = inputW

	m.viewport.Width = msg.Width
	m.rendered = -1
}

// layout sizes the viewport to whatever the other rows leave.
func (m *Model) layout(st conversation.State) {
	if !m.ready {
		return
	}
	used := lipgloss.Height(m.header.View()) + typingHeight + inputHeight + statusHeight
	if st.PaletteOpen {
		used += lipgloss.Height(m.palette.View())
	}
	if st.HintsOpen {
		used += lipgloss.Height(m.hints.View())
	}
	if len(st.Attachments) > 0 {
		used++
	}
	h := m.height - used
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// refreshViewport re-renders the thread when the log grew or the layout
// changed, and scrolls to the newest message.
func (m *Model) refreshViewport(st conversation.State) {
	m.layout(st)
	n := m.ctrl.Log().Len()
	if n == m.rendered {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
	m.rendered = n
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// applyConfig applies the settings that can change while running.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.ctrl.SetTypingSpeed(cfg.Typing.Speed)
	m.ctrl.SetSerializeReplies(cfg.SerializeReplies)

	if !strings.EqualFold(cfg.UI.Theme, m.theme.Name) {
		*m.theme = *styles.NewTheme(cfg.UI.Theme, m.opts.NoColor)
		m.markdown.SetStyle(m.theme.GlamourStyle())
	}
	m.opts.ShowTimestamps = cfg.UI.ShowTimestamps
	m.markdown.SetEnabled(cfg.UI.Glamour)
	m.credential.SetDashboardURL(cfg.Links.DashboardURL)

	m.logger.Info("config reloaded", "theme", m.theme.Name, "typing_speed", cfg.Typing.Speed)
	m.rendered = -1
}
