// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateWidth shortens s to at most maxWidth terminal cells, ending with
// "…" when anything was cut. Wide characters such as emoji count as two.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadWidth right-pads s with spaces to width cells.
func PadWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// MaskSecret hides all but the last four characters of a credential.
func MaskSecret(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}
