package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

type fakePredictor struct {
	candidates []string
	err        error
	calls      int
	lastMasked string
}

func (f *fakePredictor) PredictMasked(ctx context.Context, masked string) ([]string, error) {
	f.calls++
	f.lastMasked = masked
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func testPrompts() []string {
	return []string{
		"Volcanic eruptions release enormous amounts of pressurized gas",
		"Ocean currents distribute thermal energy around coastal regions",
		"Ancient civilizations developed sophisticated irrigation techniques",
	}
}

func TestMakeMCQQuestions_StructuralInvariants(t *testing.T) {
	predictor := &fakePredictor{candidates: []string{"alpha", "bravo", "charlie", "delta", "echo"}}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(42)))

	mcqs := synth.MakeMCQQuestions(context.Background(), testPrompts(), 3)
	if len(mcqs) == 0 {
		t.Fatal("expected at least one question")
	}
	if len(mcqs) > 3 {
		t.Fatalf("expected at most 3 questions, got %d", len(mcqs))
	}

	for _, q := range mcqs {
		if !strings.HasSuffix(q.Question, "?") {
			t.Errorf("question %q should end with '?'", q.Question)
		}
		if len(q.Choices) < 3 || len(q.Choices) > 4 {
			t.Errorf("expected 3-4 choices, got %d: %v", len(q.Choices), q.Choices)
		}

		seen := map[string]bool{}
		answerPresent := false
		for _, c := range q.Choices {
			lower := strings.ToLower(c)
			if seen[lower] {
				t.Errorf("duplicate choice %q in %v", c, q.Choices)
			}
			seen[lower] = true
			if strings.EqualFold(c, q.Answer) {
				answerPresent = true
			}
		}
		if !answerPresent {
			t.Errorf("answer %q missing from choices %v", q.Answer, q.Choices)
		}
	}
}

func TestMakeMCQQuestions_MasksExactlyOneWord(t *testing.T) {
	predictor := &fakePredictor{candidates: []string{"alpha", "bravo", "charlie"}}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(7)))

	synth.MakeMCQQuestions(context.Background(), testPrompts()[:1], 1)
	if predictor.calls != 1 {
		t.Fatalf("expected 1 predictor call, got %d", predictor.calls)
	}
	if strings.Count(predictor.lastMasked, MaskToken) != 1 {
		t.Errorf("masked prompt should contain exactly one placeholder: %q", predictor.lastMasked)
	}
}

func TestMakeMCQQuestions_PredictorErrorSkipsPrompt(t *testing.T) {
	predictor := &fakePredictor{err: errors.New("model unavailable")}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(1)))

	mcqs := synth.MakeMCQQuestions(context.Background(), testPrompts(), 2)
	if len(mcqs) != 0 {
		t.Errorf("expected empty batch when predictor always fails, got %d", len(mcqs))
	}
	if predictor.calls == 0 {
		t.Error("expected predictor to be consulted despite failures")
	}
}

func TestMakeMCQQuestions_TooFewDistractorsDiscardsPrompt(t *testing.T) {
	// Only one valid candidate — below the 2-distractor minimum.
	predictor := &fakePredictor{candidates: []string{"alpha", "<pad>", "!!!", ""}}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(1)))

	mcqs := synth.MakeMCQQuestions(context.Background(), testPrompts(), 3)
	if len(mcqs) != 0 {
		t.Errorf("expected no questions from insufficient distractors, got %d", len(mcqs))
	}
}

func TestMakeMCQQuestions_IneligiblePromptSkipped(t *testing.T) {
	predictor := &fakePredictor{candidates: []string{"alpha", "bravo", "charlie"}}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(1)))

	// No alphabetic 4-12 letter words at all.
	mcqs := synth.MakeMCQQuestions(context.Background(), []string{"a b c 123"}, 2)
	if len(mcqs) != 0 {
		t.Errorf("expected no questions, got %d", len(mcqs))
	}
	if predictor.calls != 0 {
		t.Errorf("predictor should not be called for ineligible prompts, got %d calls", predictor.calls)
	}
}

func TestMakeMCQQuestions_ExtremeLimit(t *testing.T) {
	predictor := &fakePredictor{candidates: []string{"alpha", "bravo", "charlie"}}
	synth := NewSynthesizer(predictor, rand.New(rand.NewSource(3)))

	// A request-supplied limit can be arbitrarily large; the prompt budget
	// must not wrap negative.
	mcqs := synth.MakeMCQQuestions(context.Background(), testPrompts(), 1<<62)
	if len(mcqs) > len(testPrompts()) {
		t.Errorf("expected at most %d questions, got %d", len(testPrompts()), len(mcqs))
	}
}

func TestMakeMCQQuestions_EmptyPrompts(t *testing.T) {
	synth := NewSynthesizer(&fakePredictor{}, nil)
	if got := synth.MakeMCQQuestions(context.Background(), nil, 5); len(got) != 0 {
		t.Errorf("expected empty batch, got %v", got)
	}
}

func TestPickDistractors_DedupAndRanking(t *testing.T) {
	candidates := []string{"Answer", "first", "FIRST", "second", "third", "fourth"}
	got := pickDistractors(candidates, "answer")
	want := []string{"first", "second", "third"}
	if len(got) != 3 {
		t.Fatalf("expected 3 distractors, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected predictor-ranked order %v, got %v", want, got)
			break
		}
	}
}

func TestIsValidCandidate(t *testing.T) {
	tests := []struct {
		tok    string
		answer string
		want   bool
	}{
		{"plasma", "energy", true},
		{"", "energy", false},
		{"<mask>", "energy", false},
		{"token>", "energy", false},
		{"...", "energy", false},
		{"_", "energy", false},
		{"x", "energy", false},
		{"x", "y", true}, // single char OK against single-char answer
		{strings.Repeat("a", 41), "energy", false},
		{strings.Repeat("a", 40), "energy", true},
		{"well-known", "energy", true}, // punctuation mixed with letters is fine
	}

	for _, tt := range tests {
		if got := isValidCandidate(tt.tok, tt.answer); got != tt.want {
			t.Errorf("isValidCandidate(%q, %q) = %v, want %v", tt.tok, tt.answer, got, tt.want)
		}
	}
}
