// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestNewTheme_Names(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantDark bool
	}{
		{"dark", ThemeDark, true},
		{"LIGHT", ThemeLight, false},
		{" dark ", ThemeDark, true},
	}

	for _, tc := range tests {
		theme := NewTheme(tc.name, true)
		if theme.Name != tc.wantName {
			t.Errorf("NewTheme(%q).Name = %q, want %q", tc.name, theme.Name, tc.wantName)
		}
		if theme.IsDark != tc.wantDark {
			t.Errorf("NewTheme(%q).IsDark = %v, want %v", tc.name, theme.IsDark, tc.wantDark)
		}
	}
}

func TestNewTheme_UnknownFallsBackToAuto(t *testing.T) {
	theme := NewTheme("solarized", true)
	if theme.Name != ThemeAuto {
		t.Errorf("Name = %q, want %q", theme.Name, ThemeAuto)
	}
}

func TestNewTheme_NoColor(t *testing.T) {
	theme := NewTheme("dark", true)
	if theme.ColorProfile != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii", theme.ColorProfile)
	}
	if got := theme.GlamourStyle(); got != "notty" {
		t.Errorf("GlamourStyle() = %q, want notty", got)
	}

	rendered := theme.UserBubble.Render("hello")
	if strings.Contains(rendered, "\x1b[") {
		t.Errorf("no-color theme emitted escape codes: %q", rendered)
	}
}

func TestGlamourStyle(t *testing.T) {
	theme := &Theme{IsDark: true, ColorProfile: termenv.TrueColor}
	if got := theme.GlamourStyle(); got != "dark" {
		t.Errorf("GlamourStyle() = %q, want dark", got)
	}
	theme.IsDark = false
	if got := theme.GlamourStyle(); got != "light" {
		t.Errorf("GlamourStyle() = %q, want light", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		width   int
		percent float64
		want    string
	}{
		{0, 50, ""},
		{4, 0, "░░░░"},
		{4, 50, "██░░"},
		{4, 150, "████"},
		{4, -10, "░░░░"},
	}

	for _, tc := range tests {
		if got := RenderProgressBar(tc.width, tc.percent); got != tc.want {
			t.Errorf("RenderProgressBar(%d, %v) = %q, want %q", tc.width, tc.percent, got, tc.want)
		}
	}
}

func TestRenderHelpers(t *testing.T) {
	NewTheme("dark", true)
	if got := RenderError("boom"); !strings.Contains(got, "[X] boom") {
		t.Errorf("RenderError = %q", got)
	}
	if got := RenderWarning("careful"); !strings.Contains(got, "[!] careful") {
		t.Errorf("RenderWarning = %q", got)
	}
	if got := RenderLink("https://x.test"); !strings.Contains(got, "https://x.test") {
		t.Errorf("RenderLink = %q", got)
	}
}
