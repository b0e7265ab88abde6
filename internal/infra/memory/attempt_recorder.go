package memory

import (
	"context"
	"fmt"
	"sync"

	"course-quiz-service/internal/domain"
)

// AttemptRecorder stores attempts in memory (useful for tests/demos).
type AttemptRecorder struct {
	mu       sync.Mutex
	next     int
	attempts map[string]domain.AttemptResult
}

func NewAttemptRecorder() *AttemptRecorder {
	return &AttemptRecorder{attempts: make(map[string]domain.AttemptResult)}
}

func (r *AttemptRecorder) RecordAttempt(_ context.Context, result domain.AttemptResult) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := fmt.Sprintf("attempt-%d", r.next)
	r.attempts[id] = result
	return id, nil
}

// Attempt returns a stored attempt by record id.
func (r *AttemptRecorder) Attempt(id string) (domain.AttemptResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result, ok := r.attempts[id]
	return result, ok
}

// Len reports how many attempts have been recorded.
func (r *AttemptRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts)
}
