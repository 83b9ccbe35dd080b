// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// TypingDots animates the "Thinking" indicator.
var TypingDots = spinner.Spinner{
	Frames: []string{"   ", ".  ", ".. ", "..."},
	FPS:    time.Second / 3,
}

// LoadingSpinner animates the loading screen.
var LoadingSpinner = spinner.Spinner{
	Frames: []string{"[    ]", "[=   ]", "[==  ]", "[=== ]", "[====]", "[ ===]", "[  ==]", "[   =]"},
	FPS:    time.Second / 8,
}

// Progress bar glyphs.
var (
	ProgressFull  = "█"
	ProgressEmpty = "░"
)

// RenderProgressBar renders a bar width cells wide, percent (0-100) filled.
func RenderProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(float64(width) * percent / 100)
	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(ProgressFull, filled))
	sb.WriteString(strings.Repeat(ProgressEmpty, width-filled))
	return sb.String()
}
