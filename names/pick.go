package names

import (
	"sort"
	"strings"
	"unicode"
)

// PickName chooses the best display form from a set of spellings of the
// same name. The choice is deterministic: title-cased forms beat shouty or
// lowercased ones, longer forms beat shorter ones, ties break
// lexicographically. Returns "" for an empty input.
func PickName(values []string) string {
	candidates := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned := Clean(v); cleaned != "" {
			candidates = append(candidates, cleaned)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := displayScore(candidates[i]), displayScore(candidates[j])
		if si != sj {
			return si > sj
		}
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0]
}

// displayScore counts words that look deliberately cased (leading upper,
// not all upper).
func displayScore(name string) int {
	score := 0
	for _, word := range strings.Fields(name) {
		runes := []rune(word)
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if len(runes) > 1 && strings.ToUpper(word) == word {
			continue
		}
		score++
	}
	return score
}
