package redis

import (
	"context"
	"testing"
	"time"

	"course-quiz-service/internal/domain"
	"course-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestAttemptRecorderMirrorsRecentAttempts(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	recorder := NewAttemptRecorder(newClient(mr), memory.NewAttemptRecorder())
	ctx := context.Background()

	first := sampleAttempt("u1", 1)
	second := sampleAttempt("u2", 2)

	if _, err := recorder.RecordAttempt(ctx, first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	id, err := recorder.RecordAttempt(ctx, second)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}
	if id == "" {
		t.Fatalf("expected record id from inner recorder")
	}

	recent, err := recorder.RecentAttempts(ctx, "set-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent attempts, got %d", len(recent))
	}
	// Newest first.
	if recent[0].SubjectID != "u2" || recent[1].SubjectID != "u1" {
		t.Fatalf("expected newest-first order, got %s then %s", recent[0].SubjectID, recent[1].SubjectID)
	}
}

func TestAttemptRecorderSurfacesInnerFailure(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	recorder := NewAttemptRecorder(newClient(mr), failingRecorder{})

	_, err = recorder.RecordAttempt(context.Background(), sampleAttempt("u1", 1))
	if err == nil {
		t.Fatalf("expected inner failure to surface")
	}
	if mr.Exists("attempts:recent:set-1") {
		t.Fatalf("expected no mirror entry for a failed record")
	}
}

type failingRecorder struct{}

func (failingRecorder) RecordAttempt(context.Context, domain.AttemptResult) (string, error) {
	return "", domain.ErrStorageUnavailable
}

func sampleAttempt(subjectID string, score float64) domain.AttemptResult {
	return domain.AttemptResult{
		SubjectID:     subjectID,
		QuestionSetID: "set-1",
		Score:         score,
		MaxScore:      3,
		Answers: []domain.AnswerRecord{
			{
				QuestionID:     "q1",
				QuestionText:   "What is 2 + 2?",
				SelectedOption: "4",
				CorrectOption:  "4",
				IsCorrect:      true,
				PointsAwarded:  score,
			},
		},
		CompletedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}
