package questions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quizforge/backend/internal/models"
)

// Store archives generation results in postgres. It is write-mostly: the
// pipeline never reads archived batches back, only the history endpoints do.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveBatch inserts the batch row and its questions in one transaction.
func (s *Store) SaveBatch(ctx context.Context, sourceChars int, resp *models.GenerateResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	var batchID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO generation_batches (language, source_chars, cloze_count, mcq_count, short_answer_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		resp.Language, sourceChars,
		resp.Counts[models.KindCloze], resp.Counts[models.KindMCQ], resp.Counts[models.KindShortAnswer],
	).Scan(&batchID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for kind, items := range resp.Questions {
		for pos, q := range items {
			answer := ""
			var choicesJSON []byte
			switch v := q.(type) {
			case models.Cloze:
				answer = v.Answer
			case models.MCQ:
				answer = v.Answer
				choicesJSON, err = json.Marshal(v.Choices)
				if err != nil {
					return fmt.Errorf("marshal choices: %w", err)
				}
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO generated_questions (batch_id, kind, question, answer, choices, position)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				batchID, string(kind), q.Text(), answer, nullableJSON(choicesJSON), pos,
			)
			if err != nil {
				return fmt.Errorf("insert question: %w", err)
			}
		}
	}

	return tx.Commit()
}

// ListBatches returns archive summaries, newest first.
func (s *Store) ListBatches(ctx context.Context, limit, offset int) ([]models.BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, language, source_chars, cloze_count, mcq_count, short_answer_count, created_at
		 FROM generation_batches
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []models.BatchRecord
	for rows.Next() {
		var b models.BatchRecord
		if err := rows.Scan(&b.ID, &b.Language, &b.SourceChars, &b.ClozeCount, &b.MCQCount, &b.ShortAnswerCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetBatchQuestions returns the stored questions of one batch in their
// original per-kind order.
func (s *Store) GetBatchQuestions(ctx context.Context, batchID int64) ([]models.ArchivedQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_id, kind, question, answer, choices, position
		 FROM generated_questions
		 WHERE batch_id = $1
		 ORDER BY kind, position`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("get batch questions: %w", err)
	}
	defer rows.Close()

	var questions []models.ArchivedQuestion
	for rows.Next() {
		var q models.ArchivedQuestion
		var kind string
		var choicesJSON sql.NullString
		if err := rows.Scan(&q.ID, &q.BatchID, &kind, &q.Question, &q.Answer, &choicesJSON, &q.Position); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Kind = models.QuestionKind(kind)
		if choicesJSON.Valid && choicesJSON.String != "" {
			if err := json.Unmarshal([]byte(choicesJSON.String), &q.Choices); err != nil {
				return nil, fmt.Errorf("unmarshal choices: %w", err)
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
