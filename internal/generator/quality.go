package generator

import (
	"math"
	"strings"

	"github.com/quizforge/backend/internal/models"
)

// ReadabilityScore favors shorter questions: min(1, 20/tokens), with the
// token count floored at 1.
func ReadabilityScore(text string) float64 {
	n := len(strings.Fields(text))
	if n < 1 {
		n = 1
	}
	return math.Min(1.0, 20.0/float64(n))
}

// AnswerabilityScore penalizes questions with few content words. A content
// word is any token longer than 2 characters; the score caps at 10 of them.
func AnswerabilityScore(text string) float64 {
	count := 0
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			count++
		}
	}
	return math.Min(1.0, float64(count)/10.0)
}

// EvaluateBatch scores each question-type batch in [0, 1]: the mean
// readability plus the mean answerability over the batch, divided by 2.
// An empty batch scores exactly 0.
func EvaluateBatch(batches map[models.QuestionKind][]models.Question) map[models.QuestionKind]float64 {
	scores := make(map[models.QuestionKind]float64, len(batches))
	for kind, items := range batches {
		if len(items) == 0 {
			scores[kind] = 0.0
			continue
		}
		var readability, answerability float64
		for _, q := range items {
			readability += ReadabilityScore(q.Text())
			answerability += AnswerabilityScore(q.Text())
		}
		n := float64(len(items))
		scores[kind] = (readability/n + answerability/n) / 2.0
	}
	return scores
}
