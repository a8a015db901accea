package questions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quizforge/backend/internal/generator"
	"github.com/quizforge/backend/internal/models"
)

type stubPromptGen struct {
	prompts []string
	err     error
}

func (s *stubPromptGen) GeneratePrompts(ctx context.Context, sentences []string, lang string, maxQuestions int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prompts, nil
}

type stubPredictor struct {
	candidates []string
	err        error
}

func (s *stubPredictor) PredictMasked(ctx context.Context, masked string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

const testPassage = "The cat is a small domesticated carnivorous mammal of the family Felidae. " +
	"Cats communicate through vocalizations including meowing and purring sounds. " +
	"Domestic cats retain strong hunting instincts from their wild ancestors."

func newTestService(promptGen generator.PromptGenerator, predictor generator.MaskPredictor) *Service {
	synth := generator.NewSynthesizer(predictor, nil)
	return NewService(promptGen, synth, nil)
}

func TestGenerate_EmptyTextRejected(t *testing.T) {
	svc := newTestService(&stubPromptGen{}, &stubPredictor{})

	_, err := svc.Generate(context.Background(), models.GenerateRequest{Text: "   "})
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestGenerate_NoSentencesRejected(t *testing.T) {
	svc := newTestService(&stubPromptGen{}, &stubPredictor{})

	_, err := svc.Generate(context.Background(), models.GenerateRequest{Text: "Just three words"})
	if !errors.Is(err, ErrNoSentences) {
		t.Errorf("expected ErrNoSentences, got %v", err)
	}
}

func TestGenerate_AllTargets(t *testing.T) {
	promptGen := &stubPromptGen{prompts: []string{
		"what sounds do cats make when communicating",
		"why do domestic cats retain hunting instincts",
		"how do cats signal their needs to humans",
	}}
	predictor := &stubPredictor{candidates: []string{"dogs", "birds", "ferrets", "rabbits"}}
	svc := newTestService(promptGen, predictor)

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		Text:         testPassage,
		Targets:      []string{"cloze", "mcq", "short_answer"},
		NumQuestions: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Language != "en" {
		t.Errorf("expected default language 'en', got %q", resp.Language)
	}

	for _, kind := range []models.QuestionKind{models.KindCloze, models.KindMCQ, models.KindShortAnswer} {
		items, ok := resp.Questions[kind]
		if !ok {
			t.Errorf("missing questions entry for %s", kind)
			continue
		}
		if len(items) > 3 {
			t.Errorf("%s batch exceeds limit: %d", kind, len(items))
		}
		if resp.Counts[kind] != len(items) {
			t.Errorf("count mismatch for %s: %d vs %d items", kind, resp.Counts[kind], len(items))
		}
		if _, ok := resp.Evaluation[kind]; !ok {
			t.Errorf("missing evaluation entry for %s", kind)
		}
	}

	if len(resp.Questions[models.KindShortAnswer]) != 3 {
		t.Errorf("expected 3 short-answer questions from 3 prompts, got %d", len(resp.Questions[models.KindShortAnswer]))
	}
}

func TestGenerate_PromptGeneratorFailureFallsBackToSentences(t *testing.T) {
	promptGen := &stubPromptGen{err: errors.New("model offline")}
	svc := newTestService(promptGen, &stubPredictor{candidates: []string{"dogs", "birds", "mice"}})

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		Text:         testPassage,
		Targets:      []string{"short_answer"},
		NumQuestions: 2,
	})
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}

	shorts := resp.Questions[models.KindShortAnswer]
	if len(shorts) != 2 {
		t.Fatalf("expected 2 short-answer questions from sentence fallback, got %d", len(shorts))
	}
	if !strings.Contains(shorts[0].Text(), "Felidae") {
		t.Errorf("expected first question drawn from first sentence, got %q", shorts[0].Text())
	}
}

func TestGenerate_PredictorFailureYieldsEmptyMCQBatch(t *testing.T) {
	svc := newTestService(
		&stubPromptGen{prompts: []string{"what do cats communicate through vocal sounds"}},
		&stubPredictor{err: errors.New("mask model unavailable")},
	)

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		Text:         testPassage,
		Targets:      []string{"mcq"},
		NumQuestions: 3,
	})
	if err != nil {
		t.Fatalf("predictor failure must not fail the batch: %v", err)
	}

	if resp.Counts[models.KindMCQ] != 0 {
		t.Errorf("expected empty mcq batch, got %d", resp.Counts[models.KindMCQ])
	}
	if got := resp.Evaluation[models.KindMCQ]; got != 0.0 {
		t.Errorf("expected 0.0 evaluation for empty batch, got %f", got)
	}
}

func TestGenerate_UnknownTargetIgnored(t *testing.T) {
	svc := newTestService(&stubPromptGen{}, &stubPredictor{})

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		Text:    testPassage,
		Targets: []string{"essay"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Questions) != 0 {
		t.Errorf("expected no question batches for unknown target, got %v", resp.Questions)
	}
}

func TestGenerate_DefaultsTargetsAndCount(t *testing.T) {
	promptGen := &stubPromptGen{prompts: []string{
		"what is a domestic cat",
		"how do cats communicate",
	}}
	svc := newTestService(promptGen, &stubPredictor{candidates: []string{"dogs", "birds", "mice"}})

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{Text: testPassage})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, kind := range []models.QuestionKind{models.KindCloze, models.KindMCQ, models.KindShortAnswer} {
		if _, ok := resp.Questions[kind]; !ok {
			t.Errorf("expected default targets to include %s", kind)
		}
	}
	for kind, items := range resp.Questions {
		if len(items) > defaultNumQuestions {
			t.Errorf("%s batch exceeds default limit: %d", kind, len(items))
		}
	}
}

func TestGenerate_LanguageHintPassedThrough(t *testing.T) {
	svc := newTestService(&stubPromptGen{}, &stubPredictor{})

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		Text:         testPassage,
		Targets:      []string{"cloze"},
		LanguageHint: "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Language != "hi" {
		t.Errorf("expected language 'hi', got %q", resp.Language)
	}
}
