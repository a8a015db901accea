package generator

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Sentence-final punctuation for Latin scripts plus the Devanagari full
	// stop and the Arabic question mark. Go's regexp has no lookbehind, so
	// splits are done by marking each boundary and cutting on the marker —
	// the punctuation stays attached to the preceding sentence.
	sentenceEndRe = regexp.MustCompile(`([.!?।؟])\s+`)
)

// NormalizeWhitespace collapses whitespace runs to single spaces and trims.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// SplitSentences splits text after sentence-final punctuation followed by
// whitespace. The splitter is deliberately naive; downstream token counts
// depend on this exact boundary set, so don't swap in a smarter segmenter.
func SplitSentences(text string) []string {
	marked := sentenceEndRe.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// PreprocessText normalizes raw text into filtered sentences. Sentences with
// fewer than 5 whitespace-delimited tokens are dropped as degenerate.
func PreprocessText(text string) []string {
	var out []string
	for _, s := range SplitSentences(NormalizeWhitespace(text)) {
		if len(strings.Fields(s)) >= 5 {
			out = append(out, s)
		}
	}
	return out
}
