package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"course-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AttemptRecorder persists finalized attempts. Each completed session produces
// exactly one row; the engine never retries, so a failed insert is wrapped as
// ErrStorageUnavailable for the caller to decide on.
type AttemptRecorder struct {
	pool *pgxpool.Pool
}

func NewAttemptRecorder(pool *pgxpool.Pool) *AttemptRecorder {
	return &AttemptRecorder{pool: pool}
}

func (r *AttemptRecorder) RecordAttempt(ctx context.Context, result domain.AttemptResult) (string, error) {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO attempts (subject_id, question_set_id, score, max_score, answers, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		result.SubjectID, result.QuestionSetID, result.Score, result.MaxScore, answers, result.CompletedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert attempt: %v: %w", err, domain.ErrStorageUnavailable)
	}
	return strconv.FormatInt(id, 10), nil
}
