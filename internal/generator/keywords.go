package generator

import (
	"regexp"
	"sort"
	"strings"
)

// Word-boundary tokens of 4+ word characters. Maximal-munch matching gives
// whole words without needing \b, which is ASCII-only in RE2.
var keywordRe = regexp.MustCompile(`[\p{L}\p{N}_]{4,}`)

// TopKeywords returns the k most frequent lowercased keywords across the
// sentence set. Ties keep first-seen order, so the result is deterministic
// for a fixed input.
func TopKeywords(sentences []string, k int) []string {
	counts := make(map[string]int)
	var order []string
	for _, s := range sentences {
		for _, w := range keywordRe.FindAllString(s, -1) {
			w = strings.ToLower(w)
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if k >= 0 && k < len(order) {
		order = order[:k]
	}
	return order
}
