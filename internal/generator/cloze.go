package generator

import (
	"regexp"
	"strings"

	"github.com/quizforge/backend/internal/models"
)

// BlankMarker replaces the removed word in a cloze question.
const BlankMarker = "____"

// MakeClozeQuestions blanks one ranked keyword per sentence, in sentence
// order. A strict whole-word pass runs first; if it produces fewer than limit
// questions, a lenient substring pass fills the gap, skipping answers already
// used. A sentence matching no keyword in either pass contributes nothing, so
// the result may be shorter than limit.
func MakeClozeQuestions(sentences []string, limit int) []models.Cloze {
	if limit <= 0 {
		return nil
	}

	// Over-fetch keywords so sparse sentence sets can still reach the limit.
	keywords := TopKeywords(sentences, limit*3)
	var clozes []models.Cloze

	// Strict pass: first keyword with a whole-word match wins, at most one
	// blank per sentence.
	for _, s := range sentences {
		if len(clozes) >= limit {
			break
		}
		for _, kw := range keywords {
			re := wholeWordPattern(kw)
			if re.MatchString(s) {
				clozes = append(clozes, models.Cloze{
					Question: blankWholeWord(re, s),
					Answer:   kw,
				})
				break
			}
		}
	}

	// Lenient fallback: plain substring matches, one cloze per unused keyword.
	if len(clozes) < limit {
		used := make(map[string]bool, len(clozes))
		for _, c := range clozes {
			used[c.Answer] = true
		}
		for _, s := range sentences {
			if len(clozes) >= limit {
				break
			}
			lower := strings.ToLower(s)
			for _, kw := range keywords {
				if len(clozes) >= limit {
					break
				}
				if used[kw] || !strings.Contains(lower, kw) {
					continue
				}
				re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw))
				clozes = append(clozes, models.Cloze{
					Question: replaceFirst(re, s, BlankMarker),
					Answer:   kw,
				})
				used[kw] = true
			}
		}
	}

	if len(clozes) > limit {
		clozes = clozes[:limit]
	}
	return clozes
}

// wholeWordPattern matches kw case-insensitively with non-word characters (or
// string edges) on both sides. The keyword itself is capture group 2.
func wholeWordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(kw) + `)($|[^\p{L}\p{N}_])`)
}

// blankWholeWord replaces the first whole-word occurrence (capture group 2)
// with the blank marker, leaving the surrounding characters intact.
func blankWholeWord(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	return s[:m[4]] + BlankMarker + s[m[5]:]
}

// replaceFirst replaces only the first match of re.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
