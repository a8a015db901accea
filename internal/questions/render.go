package questions

import (
	"fmt"
	"strings"

	"github.com/quizforge/backend/internal/models"
)

// RenderText formats a generation response as a human-readable report:
// language header, per-type question sections, evaluation percentages, and
// question counts.
func RenderText(resp *models.GenerateResponse) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("LANGUAGE: %s\n", strings.ToUpper(resp.Language)))
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")

	if clozes := resp.Questions[models.KindCloze]; len(clozes) > 0 {
		sb.WriteString("CLOZE QUESTIONS:\n")
		sb.WriteString(strings.Repeat("-", 30))
		sb.WriteString("\n")
		for i, q := range clozes {
			c, ok := q.(models.Cloze)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c.Question))
			sb.WriteString(fmt.Sprintf("   Answer: %s\n\n", c.Answer))
		}
	}

	if shorts := resp.Questions[models.KindShortAnswer]; len(shorts) > 0 {
		sb.WriteString("SHORT ANSWER QUESTIONS:\n")
		sb.WriteString(strings.Repeat("-", 30))
		sb.WriteString("\n")
		for i, q := range shorts {
			sb.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, q.Text()))
		}
	}

	if mcqs := resp.Questions[models.KindMCQ]; len(mcqs) > 0 {
		sb.WriteString("MULTIPLE CHOICE QUESTIONS:\n")
		sb.WriteString(strings.Repeat("-", 30))
		sb.WriteString("\n")
		for i, q := range mcqs {
			m, ok := q.(models.MCQ)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, m.Question))
			for j, choice := range m.Choices {
				sb.WriteString(fmt.Sprintf("   %c. %s\n", 'A'+j, choice))
			}
			sb.WriteString(fmt.Sprintf("   Correct Answer: %s\n\n", m.Answer))
		}
	}

	if len(resp.Evaluation) > 0 {
		sb.WriteString("EVALUATION SCORES:\n")
		sb.WriteString(strings.Repeat("-", 30))
		sb.WriteString("\n")
		for _, kind := range renderOrder {
			if score, ok := resp.Evaluation[kind]; ok {
				sb.WriteString(fmt.Sprintf("%s: %.1f%%\n", kind, score*100))
			}
		}
		sb.WriteString("\n")
	}

	if len(resp.Counts) > 0 {
		sb.WriteString("QUESTION COUNTS:\n")
		sb.WriteString(strings.Repeat("-", 30))
		sb.WriteString("\n")
		for _, kind := range renderOrder {
			if count, ok := resp.Counts[kind]; ok {
				plural := "s"
				if count == 1 {
					plural = ""
				}
				sb.WriteString(fmt.Sprintf("%s: %d question%s\n", kind, count, plural))
			}
		}
	}

	return sb.String()
}

// Fixed section order keeps reports stable across runs.
var renderOrder = []models.QuestionKind{models.KindCloze, models.KindShortAnswer, models.KindMCQ}
