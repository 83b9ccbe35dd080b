// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds all the styled components for the chat screen.
type Theme struct {
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	BadgeDemo   lipgloss.Style
	BadgeAI     lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	Sender          lipgloss.Style
	Timestamp       lipgloss.Style

	FileCard       lipgloss.Style
	FileName       lipgloss.Style
	FileMeta       lipgloss.Style
	DownloadButton lipgloss.Style

	TypingName lipgloss.Style
	TypingText lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputBox           lipgloss.Style
	SendButton         lipgloss.Style
	SendButtonDisabled lipgloss.Style
	Attachment         lipgloss.Style
	Notice             lipgloss.Style
	ShortcutKey        lipgloss.Style
	ShortcutDesc       lipgloss.Style

	// ==========================================================================
	// PANELS
	// ==========================================================================

	PanelBox          lipgloss.Style
	PanelTitle        lipgloss.Style
	PanelItem         lipgloss.Style
	PanelItemSelected lipgloss.Style
	PaletteLabel      lipgloss.Style
	PaletteDesc       lipgloss.Style

	// ==========================================================================
	// MODALS
	// ==========================================================================

	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalBody    lipgloss.Style
	ModalMuted   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// ==========================================================================
	// LOADING SCREEN
	// ==========================================================================

	LoadingTitle lipgloss.Style
	LoadingText  lipgloss.Style
}

// NewTheme creates a theme. name is one of ThemeAuto, ThemeDark or
// ThemeLight; anything else behaves like ThemeAuto. noColor forces the
// ASCII profile.
func NewTheme(name string, noColor bool) *Theme {
	profile := termenv.ColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	name = strings.ToLower(strings.TrimSpace(name))
	var isDark bool
	switch name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	default:
		name = ThemeAuto
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{Name: name, IsDark: isDark, ColorProfile: profile}
	t.initStyles()
	return t
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)

	t.BadgeDemo = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.BadgeAI = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 2)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.Sender = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FileCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FileCardBorder).
		Padding(0, 1)

	t.FileName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.FileMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.DownloadButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Violet).
		Padding(0, 1)

	t.TypingName = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.TypingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SendButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Sky).
		Bold(true).
		Padding(0, 1)

	t.SendButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1)

	t.Attachment = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 1)

	t.Notice = lipgloss.NewStyle().
		Foreground(Amber)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Panels
	t.PanelBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 1)

	t.PanelTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.PanelItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PanelItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Violet).
		Bold(true).
		Padding(0, 1)

	t.PaletteLabel = lipgloss.NewStyle().
		Bold(true)

	t.PaletteDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Modals
	t.ModalBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(1, 3)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ModalBody = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ModalMuted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 2)

	// Loading screen
	t.LoadingTitle = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextMuted)
}
