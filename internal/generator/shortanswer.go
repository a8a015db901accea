package generator

import (
	"strings"

	"github.com/quizforge/backend/internal/models"
)

var interrogatives = []string{"what", "why", "how", "when", "where", "who", "which", "whom"}

// CleanQuestion normalizes a prompt into a directly answerable question:
// trim, collapse whitespace, and append a question mark when the text opens
// with an interrogative word but doesn't already end with one.
func CleanQuestion(q string) string {
	q = NormalizeWhitespace(q)
	if q == "" || strings.HasSuffix(q, "?") {
		return q
	}
	lower := strings.ToLower(q)
	for _, w := range interrogatives {
		if strings.HasPrefix(lower, w) {
			return q + "?"
		}
	}
	return q
}

// MakeShortAnswerQuestions passes the first limit prompts through
// CleanQuestion.
func MakeShortAnswerQuestions(prompts []string, limit int) []models.ShortAnswer {
	if limit <= 0 {
		return nil
	}
	if limit > len(prompts) {
		limit = len(prompts)
	}
	out := make([]models.ShortAnswer, 0, limit)
	for _, p := range prompts[:limit] {
		out = append(out, models.ShortAnswer{Question: CleanQuestion(p), AnswerType: "short"})
	}
	return out
}
