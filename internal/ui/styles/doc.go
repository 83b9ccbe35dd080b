// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the zap TUI.

All colors are Lip Gloss AdaptiveColor values, so the same palette serves
light and dark terminals. The theme name from the config ("auto", "dark" or
"light") decides which side of each pair is used; "auto" asks the terminal.

# Palette (colors.go)

	Violet      - Brand accent, assistant bubble border, selections
	Sky         - User bubble, links, focus
	Emerald     - AI Enabled badge, success notices
	Amber       - Demo Mode badge, warnings
	Rose        - Errors

# Theme (theme.go)

Theme groups every lipgloss.Style the chat screen uses: header, bubbles,
file card, input, hints, palette, modals, notice line and loading screen.
GlamourStyle names the markdown style matching the resolved background.

# Animation (animations.go)

Frame sets for the typing indicator and the loading bar.
*/
package styles
