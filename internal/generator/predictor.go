package generator

import (
	"context"
	"fmt"
	"strings"
)

// maxCandidates is how many ranked substitutions a predictor returns.
const maxCandidates = 20

// MaskPredictor returns ranked substitution candidates for the single mask
// placeholder in the input, best guess first. Implementations may fail on
// malformed input; callers treat any failure as "skip this item".
type MaskPredictor interface {
	PredictMasked(ctx context.Context, masked string) ([]string, error)
}

// PromptGenerator proposes candidate question stems for a sentence set. An
// empty result is legitimate — callers fall back to the sentences themselves.
type PromptGenerator interface {
	GeneratePrompts(ctx context.Context, sentences []string, lang string, maxQuestions int) ([]string, error)
}

// LLMPredictor implements MaskPredictor over an LLMClient.
type LLMPredictor struct {
	llm LLMClient
}

func NewLLMPredictor(llm LLMClient) *LLMPredictor {
	return &LLMPredictor{llm: llm}
}

func (p *LLMPredictor) PredictMasked(ctx context.Context, masked string) ([]string, error) {
	if strings.Count(masked, MaskToken) != 1 {
		return nil, fmt.Errorf("input must contain exactly one %s placeholder", MaskToken)
	}

	resp, err := p.llm.Generate(ctx, maskFillSystemPrompt, BuildMaskFillPrompt(masked))
	if err != nil {
		return nil, fmt.Errorf("mask prediction: %w", err)
	}

	tokens, err := ParseStringList(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse mask candidates: %w", err)
	}
	if len(tokens) > maxCandidates {
		tokens = tokens[:maxCandidates]
	}
	return tokens, nil
}

// LLMPromptGenerator implements PromptGenerator over an LLMClient.
type LLMPromptGenerator struct {
	llm LLMClient
}

func NewLLMPromptGenerator(llm LLMClient) *LLMPromptGenerator {
	return &LLMPromptGenerator{llm: llm}
}

func (g *LLMPromptGenerator) GeneratePrompts(ctx context.Context, sentences []string, lang string, maxQuestions int) ([]string, error) {
	resp, err := g.llm.Generate(ctx, promptGenSystemPrompt, BuildPromptGenPrompt(sentences, lang, maxQuestions))
	if err != nil {
		return nil, fmt.Errorf("prompt generation: %w", err)
	}

	raw, err := ParseStringList(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	prompts := make([]string, 0, len(raw))
	for _, p := range raw {
		if cleaned := CleanPromptText(p); cleaned != "" {
			prompts = append(prompts, cleaned)
		}
	}
	if len(prompts) > maxQuestions {
		prompts = prompts[:maxQuestions]
	}
	return prompts, nil
}
