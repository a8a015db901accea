package generator

import (
	"fmt"
	"strings"
)

const promptGenSystemPrompt = `You write short study questions from textbook passages. Given numbered sentences, produce candidate question stems a teacher could ask about them, in the same language as the passage. Respond with a JSON array of strings only — no prose, no numbering inside the strings.`

const maskFillSystemPrompt = `You predict the hidden word in a sentence. The input contains exactly one <mask> placeholder. Respond with a JSON array of up to 20 plausible single-word substitutions, best guess first. JSON array only — no prose.`

// BuildPromptGenPrompt lays out the sentence set for question-stem
// generation.
func BuildPromptGenPrompt(sentences []string, lang string, maxQuestions int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Language: %s\n", lang))
	sb.WriteString(fmt.Sprintf("Write up to %d question stems for this passage.\n\nSENTENCES:\n", maxQuestions))
	for i, s := range sentences {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}
	sb.WriteString("\nRespond with a JSON array of question-stem strings.")

	return sb.String()
}

// BuildMaskFillPrompt wraps one masked sentence for substitution ranking.
func BuildMaskFillPrompt(masked string) string {
	var sb strings.Builder

	sb.WriteString("SENTENCE:\n")
	sb.WriteString(masked)
	sb.WriteString("\n\nList up to 20 single words that could replace ")
	sb.WriteString(MaskToken)
	sb.WriteString(", best first, as a JSON array of strings.")

	return sb.String()
}
