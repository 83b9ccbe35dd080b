// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ScriptWord is the literal that, together with a script keyword, triggers
// the scripts collection offer.
const ScriptWord = "script"

// =============================================================================
// RANDOM SOURCE
// =============================================================================

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a concurrency-safe Source seeded with seed.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// =============================================================================
// SELECTOR
// =============================================================================

// Selector maps user messages to canned replies.
type Selector struct {
	pack *Pack
	rng  Source
}

// New creates a selector. A nil pack uses the embedded pack and a nil source
// is seeded from the clock.
func New(pack *Pack, rng Source) *Selector {
	if pack == nil {
		pack = DefaultPack()
	}
	if rng == nil {
		rng = NewSource(time.Now().UnixNano())
	}
	return &Selector{pack: pack, rng: rng}
}

// Select returns the reply for text: the first matching rule's reply, or a
// random fallback.
func (s *Selector) Select(text string) string {
	if rule, ok := s.Match(text); ok {
		return rule.Reply
	}
	return s.pack.Fallbacks[s.rng.Intn(len(s.pack.Fallbacks))]
}

// Match returns the first rule whose keywords appear in text.
func (s *Selector) Match(text string) (Rule, bool) {
	normalized := Normalize(text)
	for _, rule := range s.pack.Rules {
		if containsAny(normalized, rule.Keywords) {
			return rule, true
		}
	}
	return Rule{}, false
}

// IsScriptRelated reports whether text mentions any script keyword.
func (s *Selector) IsScriptRelated(text string) bool {
	return containsAny(Normalize(text), s.pack.ScriptKeywords)
}

// WantsScripts reports whether text should be followed by the scripts
// collection offer.
func (s *Selector) WantsScripts(text string) bool {
	return s.IsScriptRelated(text) && strings.Contains(Normalize(text), ScriptWord)
}

// Promo returns the line that introduces the scripts collection.
func (s *Selector) Promo() string {
	return s.pack.Promo
}

// Decline returns the reply used when the user declines the community link.
func (s *Selector) Decline() string {
	return s.pack.Decline
}

// Fallbacks returns a copy of the generic reply pool.
func (s *Selector) Fallbacks() []string {
	out := make([]string, len(s.pack.Fallbacks))
	copy(out, s.pack.Fallbacks)
	return out
}

// Intn exposes the selector's random source for other randomized UI bits.
func (s *Selector) Intn(n int) int {
	return s.rng.Intn(n)
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize folds text to NFKC and lower case for keyword matching.
func Normalize(text string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Lower(language.Und).String(norm.NFKC.String(text))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
