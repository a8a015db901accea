package models

import "time"

// QuestionKind tags the three synthesized question variants.
type QuestionKind string

const (
	KindCloze       QuestionKind = "cloze"
	KindMCQ         QuestionKind = "mcq"
	KindShortAnswer QuestionKind = "short_answer"
)

var ValidKinds = map[QuestionKind]bool{
	KindCloze:       true,
	KindMCQ:         true,
	KindShortAnswer: true,
}

// Question is the common view over the synthesized variants. Each synthesizer
// returns its concrete type; the scorer and renderer only need the display
// text and the kind tag.
type Question interface {
	Kind() QuestionKind
	Text() string
}

// Cloze is a sentence with exactly one word replaced by a blank marker.
// Substituting Answer back into the blank reproduces the original sentence
// up to case.
type Cloze struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (c Cloze) Kind() QuestionKind { return KindCloze }
func (c Cloze) Text() string       { return c.Question }

// MCQ pairs an interrogative stem with shuffled choices. Answer is always
// one of Choices; choice order carries no meaning.
type MCQ struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
}

func (m MCQ) Kind() QuestionKind { return KindMCQ }
func (m MCQ) Text() string       { return m.Question }

// ShortAnswer is a normalized prompt answered in free text.
type ShortAnswer struct {
	Question   string `json:"question"`
	AnswerType string `json:"answer_type"`
}

func (s ShortAnswer) Kind() QuestionKind { return KindShortAnswer }
func (s ShortAnswer) Text() string       { return s.Question }

// ── Request/Response Types ────────────────────────────

type GenerateRequest struct {
	Text         string   `json:"text"`
	Targets      []string `json:"targets"`
	NumQuestions int      `json:"num_questions"`
	LanguageHint string   `json:"language_hint,omitempty"`
	OutputFormat string   `json:"output_format,omitempty"`
}

type GenerateResponse struct {
	Language   string                      `json:"language"`
	Counts     map[QuestionKind]int        `json:"counts"`
	Questions  map[QuestionKind][]Question `json:"questions"`
	Evaluation map[QuestionKind]float64    `json:"evaluation"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Archive Types ─────────────────────────────────────

// BatchRecord summarizes one archived generation run.
type BatchRecord struct {
	ID               int64     `json:"id"`
	Language         string    `json:"language"`
	SourceChars      int       `json:"source_chars"`
	ClozeCount       int       `json:"cloze_count"`
	MCQCount         int       `json:"mcq_count"`
	ShortAnswerCount int       `json:"short_answer_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// ArchivedQuestion is one stored question row. Choices is empty for
// non-MCQ kinds and Answer is empty for short answers.
type ArchivedQuestion struct {
	ID       int64        `json:"id"`
	BatchID  int64        `json:"batch_id"`
	Kind     QuestionKind `json:"kind"`
	Question string       `json:"question"`
	Answer   string       `json:"answer,omitempty"`
	Choices  []string     `json:"choices,omitempty"`
	Position int          `json:"position"`
}
