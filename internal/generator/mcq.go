package generator

import (
	"context"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quizforge/backend/internal/models"
)

// MaskToken is the placeholder the synthesizer puts where the target word
// was. Predictor implementations translate it to whatever their backend
// expects.
const MaskToken = "<mask>"

var (
	targetWordRe = regexp.MustCompile(`\b[a-zA-Z]{4,12}\b`)
	punctOnlyRe  = regexp.MustCompile(`^[^\p{L}\p{N}]+$`)
)

// Synthesizer builds multiple-choice questions around an external
// masked-token predictor. The random source is injectable so tests can pin
// target selection and choice order; a nil rng uses the global source.
type Synthesizer struct {
	predictor MaskPredictor
	rng       *rand.Rand
}

func NewSynthesizer(predictor MaskPredictor, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{predictor: predictor, rng: rng}
}

// MakeMCQQuestions masks one word per prompt, asks the predictor for
// substitution candidates, and assembles choice sets from the validated
// distractors plus the answer. At most limit*3 prompts are examined; a
// predictor failure skips that prompt and never aborts the batch.
func (s *Synthesizer) MakeMCQQuestions(ctx context.Context, prompts []string, limit int) []models.MCQ {
	if limit <= 0 {
		return nil
	}

	// Compare before multiplying; limit comes straight from the request and
	// limit*3 can overflow.
	budget := len(prompts)
	if limit <= len(prompts)/3 {
		budget = limit * 3
	}

	var out []models.MCQ
	for _, p := range prompts[:budget] {
		if len(out) >= limit {
			break
		}

		masked, answer := s.maskOneWord(p)
		if answer == "" || !strings.Contains(masked, MaskToken) {
			continue
		}

		candidates, err := s.predictor.PredictMasked(ctx, masked)
		if err != nil {
			log.Printf("WARNING: mask prediction failed, skipping prompt: %v", err)
			continue
		}

		distractors := pickDistractors(candidates, answer)
		if len(distractors) < 2 {
			continue
		}

		choices := append(distractors, answer)
		s.shuffle(choices)

		question := p
		if !strings.HasSuffix(question, "?") {
			question += "?"
		}
		out = append(out, models.MCQ{Question: question, Choices: choices, Answer: answer})
	}
	return out
}

// maskOneWord picks a uniform-random alphabetic 4-12 letter word and masks
// its first whole-word occurrence. Returns an empty answer when the prompt
// has no eligible word.
func (s *Synthesizer) maskOneWord(text string) (masked, target string) {
	words := targetWordRe.FindAllString(text, -1)
	if len(words) == 0 {
		return text, ""
	}
	target = words[s.intn(len(words))]
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(target) + `\b`)
	return replaceFirst(re, text, MaskToken), target
}

// pickDistractors keeps valid candidates in predictor-ranked order until 3
// are collected. Candidates equal to the answer or to an accepted distractor
// (case-insensitively) are rejected.
func pickDistractors(candidates []string, answer string) []string {
	seen := map[string]bool{strings.ToLower(answer): true}
	var distractors []string
	for _, cand := range candidates {
		if len(distractors) >= 3 {
			break
		}
		tok := strings.TrimSpace(cand)
		if !isValidCandidate(tok, answer) || seen[strings.ToLower(tok)] {
			continue
		}
		distractors = append(distractors, tok)
		seen[strings.ToLower(tok)] = true
	}
	return distractors
}

// isValidCandidate applies the rejection rules in order: empty, leftover
// angle-bracket tokens, pure punctuation, single character against a longer
// answer, over-long.
func isValidCandidate(tok, answer string) bool {
	if tok == "" {
		return false
	}
	if strings.ContainsAny(tok, "<>") {
		return false
	}
	if punctOnlyRe.MatchString(tok) {
		return false
	}
	if utf8.RuneCountInString(tok) == 1 && utf8.RuneCountInString(answer) > 1 {
		return false
	}
	if utf8.RuneCountInString(tok) > 40 {
		return false
	}
	return true
}

func (s *Synthesizer) intn(n int) int {
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

func (s *Synthesizer) shuffle(xs []string) {
	swap := func(i, j int) { xs[i], xs[j] = xs[j], xs[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(xs), swap)
		return
	}
	rand.Shuffle(len(xs), swap)
}
