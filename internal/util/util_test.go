// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	data := []byte("Hello, World!")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Data mismatch: got %q, want %q", got, data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "test.txt")

	if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestAtomicWriteFile_OverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	for _, content := range []string{"first", "second"} {
		if err := AtomicWriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
	}

	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello w…"},
		{"All_Scripts.zip", 0, ""},
		{"📁📁📁", 4, "📁…"},
	}

	for _, tc := range tests {
		if got := TruncateWidth(tc.input, tc.maxWidth); got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
		}
	}
}

func TestPadWidth(t *testing.T) {
	if got := PadWidth("ab", 4); got != "ab  " {
		t.Errorf("PadWidth = %q", got)
	}
	if got := Width("📁a"); got != 3 {
		t.Errorf("Width = %d, want 3", got)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"abc":        "•••",
		"abcdefgh12": "••••••gh12",
	}
	for in, want := range tests {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
