package redis

import (
	"context"
	"encoding/json"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// recentAttemptsMax caps the per-set recent list.
const recentAttemptsMax = 50

// AttemptRecorder decorates a durable recorder with a Redis mirror of the most
// recent attempts per question set (attempts:recent:{setID}, newest first).
// The mirror is best-effort; durability comes from the inner recorder, and a
// failed inner write is surfaced unchanged without touching the mirror.
type AttemptRecorder struct {
	client *redis.Client
	inner  app.AttemptRecorder
}

func NewAttemptRecorder(client *redis.Client, inner app.AttemptRecorder) *AttemptRecorder {
	return &AttemptRecorder{client: client, inner: inner}
}

func (r *AttemptRecorder) RecordAttempt(ctx context.Context, result domain.AttemptResult) (string, error) {
	recordID, err := r.inner.RecordAttempt(ctx, result)
	if err != nil {
		return "", err
	}

	if data, err := json.Marshal(result); err == nil {
		key := r.recentKey(result.QuestionSetID)
		pipe := r.client.Pipeline()
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, recentAttemptsMax-1)
		_, _ = pipe.Exec(ctx)
	}
	return recordID, nil
}

// RecentAttempts returns up to n of the newest attempts recorded for a set on
// this mirror.
func (r *AttemptRecorder) RecentAttempts(ctx context.Context, setID string, n int) ([]domain.AttemptResult, error) {
	if n <= 0 || n > recentAttemptsMax {
		n = recentAttemptsMax
	}
	raw, err := r.client.LRange(ctx, r.recentKey(setID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	attempts := make([]domain.AttemptResult, 0, len(raw))
	for _, item := range raw {
		var result domain.AttemptResult
		if err := json.Unmarshal([]byte(item), &result); err != nil {
			continue
		}
		attempts = append(attempts, result)
	}
	return attempts, nil
}

func (r *AttemptRecorder) recentKey(setID string) string {
	return "attempts:recent:" + setID
}
