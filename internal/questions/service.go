package questions

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/quizforge/backend/internal/generator"
	"github.com/quizforge/backend/internal/models"
)

var (
	ErrEmptyText   = errors.New("no text provided")
	ErrNoSentences = errors.New("no valid sentences found in text")
)

const defaultNumQuestions = 5

// Service runs the synthesis pipeline for one generation request. All
// pipeline entities live only for the duration of the call; the optional
// store archives results at the boundary but the pipeline never reads it.
type Service struct {
	prompts generator.PromptGenerator
	mcq     *generator.Synthesizer
	store   *Store // nil disables archiving
}

func NewService(prompts generator.PromptGenerator, mcq *generator.Synthesizer, store *Store) *Service {
	return &Service{prompts: prompts, mcq: mcq, store: store}
}

// Generate runs normalization, prompt generation, per-target synthesis, and
// quality scoring. A prompt-generator failure degrades to synthesizing from
// the sentences directly; it never fails the request.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	lang := req.LanguageHint
	if lang == "" {
		lang = "en"
	}

	sentences := generator.PreprocessText(text)
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}

	num := req.NumQuestions
	if num <= 0 {
		num = defaultNumQuestions
	}

	// Short passages repeat sentences from the front so each synthesizer
	// still has num inputs to work with.
	if len(sentences) < num {
		needed := num - len(sentences)
		if needed > len(sentences) {
			needed = len(sentences)
		}
		sentences = append(sentences, sentences[:needed]...)
	}

	targets := req.Targets
	if len(targets) == 0 {
		targets = []string{string(models.KindMCQ), string(models.KindCloze), string(models.KindShortAnswer)}
	}

	prompts := s.generatePrompts(ctx, sentences, lang, num)

	// Synthesizers that consume prompts fall back to the sentences when the
	// generator produced nothing.
	base := prompts
	if len(base) == 0 {
		base = sentences
	}

	resp := &models.GenerateResponse{
		Language:  lang,
		Counts:    make(map[models.QuestionKind]int),
		Questions: make(map[models.QuestionKind][]models.Question),
	}

	for _, t := range targets {
		kind := models.QuestionKind(t)
		if !models.ValidKinds[kind] {
			continue
		}
		if _, done := resp.Questions[kind]; done {
			continue
		}
		resp.Questions[kind] = s.synthesize(ctx, kind, sentences, base, num)
		resp.Counts[kind] = len(resp.Questions[kind])
	}

	resp.Evaluation = generator.EvaluateBatch(resp.Questions)

	if s.store != nil {
		if err := s.store.SaveBatch(ctx, len(req.Text), resp); err != nil {
			log.Printf("WARNING: failed to archive generation batch: %v", err)
		}
	}

	return resp, nil
}

func (s *Service) generatePrompts(ctx context.Context, sentences []string, lang string, num int) []string {
	if s.prompts == nil {
		return nil
	}
	maxQuestions := num * 3
	if maxQuestions < 10 {
		maxQuestions = 10
	}
	prompts, err := s.prompts.GeneratePrompts(ctx, sentences, lang, maxQuestions)
	if err != nil {
		log.Printf("WARNING: prompt generation failed, falling back to sentences: %v", err)
		return nil
	}
	return prompts
}

func (s *Service) synthesize(ctx context.Context, kind models.QuestionKind, sentences, base []string, num int) []models.Question {
	switch kind {
	case models.KindCloze:
		clozes := generator.MakeClozeQuestions(sentences, num)
		items := make([]models.Question, 0, len(clozes))
		for _, c := range clozes {
			c.Question = generator.CleanGeneratedText(c.Question)
			c.Answer = generator.CleanGeneratedText(c.Answer)
			items = append(items, c)
		}
		return items

	case models.KindMCQ:
		mcqs := s.mcq.MakeMCQQuestions(ctx, base, num)
		items := make([]models.Question, 0, len(mcqs))
		for _, m := range mcqs {
			m.Question = generator.CleanGeneratedText(m.Question)
			m.Answer = generator.CleanGeneratedText(m.Answer)
			for i, c := range m.Choices {
				m.Choices[i] = generator.CleanGeneratedText(c)
			}
			items = append(items, m)
		}
		return items

	case models.KindShortAnswer:
		shorts := generator.MakeShortAnswerQuestions(base, num)
		items := make([]models.Question, 0, len(shorts))
		for _, sa := range shorts {
			sa.Question = generator.CleanGeneratedText(sa.Question)
			items = append(items, sa)
		}
		return items
	}
	return nil
}

// ListBatches returns archived batch summaries, newest first.
func (s *Service) ListBatches(ctx context.Context, limit, offset int) ([]models.BatchRecord, error) {
	if s.store == nil {
		return []models.BatchRecord{}, nil
	}
	return s.store.ListBatches(ctx, limit, offset)
}

// GetBatchQuestions returns the stored questions of one archived batch.
func (s *Service) GetBatchQuestions(ctx context.Context, batchID int64) ([]models.ArchivedQuestion, error) {
	if s.store == nil {
		return []models.ArchivedQuestion{}, nil
	}
	return s.store.GetBatchQuestions(ctx, batchID)
}
