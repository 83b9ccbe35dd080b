// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same index.
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

func TestSelect_KeywordGroups(t *testing.T) {
	pack := DefaultPack()
	sel := New(pack, fixedSource(0))

	tests := []struct {
		input string
		rule  string
	}{
		{"I need a script", "scripts"},
		{"can you help me", "help"},
		{"Where is SUPPORT?", "help"},
		{"tell me about discord", "community"},
		{"who are you", "introduction"},
		{"So... WHAT ARE YOU exactly", "introduction"},
		// Earliest declared group wins.
		{"help me with a script", "scripts"},
		{"discord support", "help"},
	}

	byName := map[string]string{}
	for _, r := range pack.Rules {
		byName[r.Name] = r.Reply
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, byName[tc.rule], sel.Select(tc.input))
		})
	}
}

func TestSelect_FallbackIsFromPool(t *testing.T) {
	sel := New(nil, NewSource(42))
	pool := sel.Fallbacks()
	require.GreaterOrEqual(t, len(pool), MinFallbacks)

	for i := 0; i < 100; i++ {
		assert.Contains(t, pool, sel.Select("random unrelated text"))
	}
}

func TestSelect_FallbackUsesInjectedSource(t *testing.T) {
	pool := DefaultPack().Fallbacks
	for i := range pool {
		sel := New(nil, fixedSource(i))
		assert.Equal(t, pool[i], sel.Select("nothing to see"))
	}
}

func TestSelect_FullwidthInput(t *testing.T) {
	sel := New(nil, fixedSource(0))
	rule, ok := sel.Match("ＨＥＬＰ")
	require.True(t, ok)
	assert.Equal(t, "help", rule.Name)
}

func TestScriptKeywords(t *testing.T) {
	sel := New(nil, fixedSource(0))

	tests := []struct {
		input        string
		related      bool
		wantsScripts bool
	}{
		{"can I download the script", true, true},
		{"Script please", true, true},
		{"show me some code", true, false},
		{"any automation tool?", true, false},
		{"hello there", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.related, sel.IsScriptRelated(tc.input))
			assert.Equal(t, tc.wantsScripts, sel.WantsScripts(tc.input))
		})
	}
}

func TestPackTexts(t *testing.T) {
	sel := New(nil, nil)
	assert.Equal(t, "Here's our complete scripts collection! 📁", sel.Promo())
	assert.True(t, strings.HasPrefix(sel.Decline(), "No problem!"))
}

func TestParsePack_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "rules: [::"},
		{"no rules", "fallbacks: [a, b, c, d, e]\nscript_keywords: [x]\npromo: p\ndecline: d\n"},
		{"few fallbacks", "rules: [{name: a, keywords: [a], reply: r}]\nfallbacks: [a]\nscript_keywords: [x]\npromo: p\ndecline: d\n"},
		{"empty reply", "rules: [{name: a, keywords: [a], reply: ''}]\nfallbacks: [a, b, c, d, e]\nscript_keywords: [x]\npromo: p\ndecline: d\n"},
		{"missing promo", "rules: [{name: a, keywords: [a], reply: r}]\nfallbacks: [a, b, c, d, e]\nscript_keywords: [x]\ndecline: d\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePack([]byte(tc.yaml))
			assert.True(t, errors.Is(err, ErrInvalidPack), "got %v", err)
		})
	}
}

func TestLoadPack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.yaml")
	data := `
rules:
  - name: greet
    keywords: [HELLO]
    reply: hi there
fallbacks: [a, b, c, d, e]
script_keywords: [script]
promo: here
decline: ok
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	pack, err := LoadPack(path)
	require.NoError(t, err)

	sel := New(pack, fixedSource(0))
	assert.Equal(t, "hi there", sel.Select("well hello"))
	assert.Equal(t, "a", sel.Select("nope"))

	_, err = LoadPack(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
