package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Leftover sentinel tokens some seq2seq models emit around generated text.
var extraIDRe = regexp.MustCompile(`<extra_id_\d+>`)

var generatePrefixRe = regexp.MustCompile(`(?i)^\s*generate question:\s*`)

// ParseStringList decodes an LLM response into a list of non-empty strings,
// tolerating markdown code fences around the JSON.
func ParseStringList(responseBody string) ([]string, error) {
	cleaned := stripCodeFences(responseBody)

	var items []string
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON list: %w", err)
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// CleanGeneratedText strips model-sentinel tokens and collapses whitespace.
// Applied to every outgoing question string.
func CleanGeneratedText(text string) string {
	text = extraIDRe.ReplaceAllString(text, "")
	return NormalizeWhitespace(text)
}

// CleanPromptText additionally drops an echoed instruction prefix; used only
// on prompt-generator output.
func CleanPromptText(text string) string {
	return CleanGeneratedText(generatePrefixRe.ReplaceAllString(text, ""))
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
