// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/config"
	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/ui/components"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// InputPlaceholder is shown in the empty input.
const InputPlaceholder = "Ask zap anything..."

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the chat model. Nil collaborators fall back to the
// conversation placeholders.
type Options struct {
	Theme      *styles.Theme
	Store      conversation.CredentialStore
	Downloader conversation.Downloader
	Completer  conversation.Completer
	Opener     conversation.LinkOpener
	Logger     *slog.Logger

	ShowTimestamps bool
	Markdown       bool
	DashboardURL   string

	// NoColor keeps the ASCII profile when the theme is rebuilt on reload.
	NoColor bool

	// ConfigUpdates delivers reloaded configs, usually from config.Watcher.
	ConfigUpdates <-chan *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	ctrl   *conversation.Controller
	opts   Options
	theme  *styles.Theme
	keys   KeyMap
	logger *slog.Logger

	viewport viewport.Model
	input    textinput.Model
	markdown *components.MarkdownRenderer

	header     *components.Header
	palette    *components.CommandPalette
	hints      *components.HintsPanel
	confirm    *components.LinkConfirm
	credential *components.CredentialModal
	status     *components.StatusLine
	typing     components.TypingIndicator
	loading    components.LoadingScreen

	// prev is the controller state as of the last sync, used to detect
	// panels and modals opening.
	prev conversation.State

	// rendered is the log length the viewport content was built from.
	rendered int

	width  int
	height int
	ready  bool
	quit   bool
}

// New creates the chat model around ctrl.
func New(ctrl *conversation.Controller, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ThemeAuto, opts.NoColor)
	}
	if opts.Downloader == nil {
		opts.Downloader = conversation.MockDownloader{}
	}
	if opts.Completer == nil {
		opts.Completer = conversation.NoopCompleter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := opts.Theme

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = 2000
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Violet).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	loading, _ := components.NewLoadingScreen(theme, conversation.LoadingDelay).Start(time.Now())

	credential := components.NewCredentialModal(theme)
	credential.SetDashboardURL(opts.DashboardURL)

	return Model{
		ctrl:       ctrl,
		opts:       opts,
		theme:      theme,
		keys:       DefaultKeyMap(),
		logger:     logger,
		viewport:   vp,
		input:      ti,
		markdown:   components.NewMarkdownRenderer(theme.GlamourStyle(), opts.Markdown),
		header:     components.NewHeader(theme),
		palette:    components.NewCommandPalette(conversation.Suggestions, theme),
		hints:      components.NewHintsPanel(conversation.Hints, theme),
		confirm:    components.NewLinkConfirm(theme),
		credential: credential,
		status:     components.NewStatusLine(theme),
		typing:     components.NewTypingIndicator(theme),
		loading:    loading,
		prev:       ctrl.State(),
		rendered:   -1,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the loading screen and the config watcher subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.runEffects(m.ctrl.Start()),
		m.loading.Tick(),
		m.waitForConfig(),
	)
}

// waitForConfig blocks on the next config update.
func (m Model) waitForConfig() tea.Cmd {
	ch := m.opts.ConfigUpdates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigUpdatedMsg{Config: cfg}
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Controller returns the hosted controller.
func (m Model) Controller() *conversation.Controller {
	return m.ctrl
}

// State returns the controller state.
func (m Model) State() conversation.State {
	return m.ctrl.State()
}

// InputValue returns the text in the input.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quit
}
