// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Violet - Brand accent, assistant border, selections
var Violet = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}

// Sky - User bubble accent, links
var Sky = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"}

// Emerald - AI Enabled badge, success
var Emerald = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}

// Amber - Demo Mode badge, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#FB7185"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#0B1120"}
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#1F2937"}
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User bubble - solid accent, right aligned
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#0284C7", Dark: "#0369A1"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#F0F9FF"}

// Assistant bubble - quiet surface with a violet border, left aligned
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#1F1B2E"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#312E81", Dark: "#EDE9FE"}
var AssistantBubbleBorder = Violet

// File card
var FileCardBorder = lipgloss.AdaptiveColor{Light: "#A78BFA", Dark: "#7C3AED"}

// =============================================================================
// STATUS RENDERING
// =============================================================================

// RenderLink renders text as an underlined link.
func RenderLink(text string) string {
	return lipgloss.NewStyle().Foreground(Sky).Underline(true).Render(text)
}

// RenderError renders an error line with a shape marker.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).Render("[X] " + message)
}

// RenderWarning renders a warning line with a shape marker.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Bold(true).Render("[!] " + message)
}
