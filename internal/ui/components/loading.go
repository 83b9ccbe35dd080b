// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// Loading screen texts.
const (
	LoadingTitle = "Final Site"
	LoadingText  = "Loading..."
)

// LoadingScreen is shown full screen until the loading delay ends.
type LoadingScreen struct {
	spinner  spinner.Model
	started  time.Time
	duration time.Duration
	width    int
	height   int
	theme    *styles.Theme
}

// NewLoadingScreen creates a loading screen whose bar fills over duration.
func NewLoadingScreen(theme *styles.Theme, duration time.Duration) LoadingScreen {
	s := spinner.New()
	s.Spinner = styles.LoadingSpinner
	s.Style = theme.LoadingText
	return LoadingScreen{spinner: s, duration: duration, theme: theme}
}

// Start records the start time and begins the animation.
func (l LoadingScreen) Start(now time.Time) (LoadingScreen, tea.Cmd) {
	l.started = now
	return l, l.spinner.Tick
}

// Tick continues the animation.
func (l LoadingScreen) Tick() tea.Cmd {
	return l.spinner.Tick
}

// SetSize sets the screen dimensions.
func (l *LoadingScreen) SetSize(width, height int) {
	l.width, l.height = width, height
}

// Update advances the animation.
func (l LoadingScreen) Update(msg tea.Msg) (LoadingScreen, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// Progress returns the fill percentage at now.
func (l LoadingScreen) Progress(now time.Time) float64 {
	if l.duration <= 0 || l.started.IsZero() {
		return 0
	}
	p := float64(now.Sub(l.started)) / float64(l.duration) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// View renders the screen centered.
func (l LoadingScreen) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		l.theme.LoadingTitle.Render(LoadingTitle),
		"",
		l.theme.LoadingText.Render(styles.RenderProgressBar(24, l.Progress(time.Now()))),
		l.theme.LoadingText.Render(LoadingText+" ")+l.spinner.View(),
	)
	if l.width <= 0 || l.height <= 0 {
		return content
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, content)
}
