// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy ranks record names against a typed pattern with fzf's
// matching algorithm. It backs the browser's filter and the "did you
// mean" suggestions for unknown record names.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// Match is one candidate that matched a pattern.
type Match struct {
	Text  string
	Score int

	// Positions are the rune offsets of matched characters, for
	// highlighting.
	Positions []int
}

// Matcher reuses fzf's scratch memory across matches. Not safe for
// concurrent use.
type Matcher struct {
	slab *util.Slab
}

// NewMatcher returns a matcher.
func NewMatcher() *Matcher {
	return &Matcher{slab: util.MakeSlab(100*1024, 2048)}
}

// Match matches pattern against text, case-insensitively.
func (m *Matcher) Match(text, pattern string) (Match, bool) {
	if pattern == "" {
		return Match{Text: text}, true
	}
	chars := util.ToChars([]byte(text))
	// fzf expects a lowercased pattern for case-insensitive matching.
	runes := []rune(strings.ToLower(pattern))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, runes, true, m.slab)
	if result.Start < 0 {
		return Match{}, false
	}
	match := Match{Text: text, Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
		sort.Ints(match.Positions)
	}
	return match, true
}

// Filter returns the candidates matching pattern, best first. Ties keep
// candidate order, so the result is deterministic.
func (m *Matcher) Filter(candidates []string, pattern string) []Match {
	var matches []Match
	for _, candidate := range candidates {
		if match, ok := m.Match(candidate, pattern); ok {
			matches = append(matches, match)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Closest returns the best-scoring candidate for an unknown name, or ""
// when nothing matches.
func Closest(unknown string, candidates []string) string {
	matches := NewMatcher().Filter(candidates, unknown)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Text
}
