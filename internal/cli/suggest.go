// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "strings"

// knownWords are the commands and config subcommands typos are matched
// against.
var knownWords = []string{
	"tui", "chat", "ask", "config", "doctor", "version", "help",
	"show", "path", "init", "keys", "get", "set",
}

// SuggestCommand returns the known word closest to input, or "" when
// nothing is close enough to be a typo.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)
	if len(input) < 2 {
		return ""
	}

	// Allow one edit for short words, two from four letters on.
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}

	best, bestDistance := "", maxDistance+1
	for _, w := range knownWords {
		d := levenshteinDistance(input, w)
		if d == 0 {
			return ""
		}
		if d < bestDistance {
			best, bestDistance = w, d
		}
	}
	return best
}

// levenshteinDistance is the number of single-rune edits between s1 and s2.
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
