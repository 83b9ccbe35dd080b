// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// FuzzyMatch reports whether every rune of query appears in target in
// order, ignoring case. Consecutive runs, word starts and a match on the
// first rune score higher.
//
//	"fg"  matches "Import Figma"
//	"dis" matches "/discord" ahead of "Improve existing UI design"
func FuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	q := []rune(strings.ToLower(query))
	t := []rune(strings.ToLower(target))
	if len(q) > len(t) {
		return 0, false
	}

	qi, last := 0, -2
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}
		s := 1
		if last == ti-1 {
			s += 5
		}
		if ti == 0 {
			s += 10
		}
		if isWordStart(t, ti) {
			s += 7
		}
		score += s
		last = ti
		qi++
	}
	if qi < len(q) {
		return 0, false
	}
	return score, true
}

// isWordStart reports whether pos begins a word.
func isWordStart(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := runes[pos-1]
	return prev == ' ' || prev == '/' || prev == '-' || prev == '_' || unicode.IsPunct(prev)
}

// ScoredIndex pairs an item index with its best match score.
type ScoredIndex struct {
	Index int
	Score int
}

// FuzzyRank matches query against each item's fields and returns the
// matching indexes, best first. Ties keep item order.
func FuzzyRank(query string, items [][]string) []ScoredIndex {
	var out []ScoredIndex
	for i, fields := range items {
		best, ok := 0, false
		for _, f := range fields {
			if s, m := FuzzyMatch(query, f); m && (!ok || s > best) {
				best, ok = s, true
			}
		}
		if ok {
			out = append(out, ScoredIndex{Index: i, Score: best})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}
