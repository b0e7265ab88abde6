package app_test

import (
	"errors"
	"testing"
	"time"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
)

func TestSingleQuestionCorrect(t *testing.T) {
	session := startTestSession(t, []domain.Question{mathQuestion()})

	outcome, err := session.SubmitAnswer("4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Finished {
		t.Fatalf("expected session finished after last answer")
	}
	if outcome.Result == nil {
		t.Fatalf("expected attempt result on finish")
	}
	if outcome.Result.Score != 1 || outcome.Result.MaxScore != 1 {
		t.Fatalf("expected score 1/1, got %v/%v", outcome.Result.Score, outcome.Result.MaxScore)
	}
	if session.Status() != domain.SessionCompleted {
		t.Fatalf("expected completed status, got %s", session.Status())
	}
}

func TestSingleQuestionWrong(t *testing.T) {
	session := startTestSession(t, []domain.Question{mathQuestion()})

	outcome, err := session.SubmitAnswer("3")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Finished || outcome.Result.Score != 0 {
		t.Fatalf("expected finished with score 0, got finished=%v score=%v", outcome.Finished, outcome.Result.Score)
	}
	record := outcome.Result.Answers[0]
	if record.IsCorrect || record.PointsAwarded != 0 {
		t.Fatalf("expected incorrect zero-point record, got %+v", record)
	}
	if record.CorrectOption != "4" || record.SelectedOption != "3" {
		t.Fatalf("expected captured options, got %+v", record)
	}
}

func TestMixedAnswersAccumulateScore(t *testing.T) {
	questions := threeQuestions()
	session := startTestSession(t, questions)

	answers := []string{
		questions[0].CorrectAnswer, // 1 mark
		"wrong",                    // 0 of 2
		questions[2].CorrectAnswer, // 1 mark
	}

	var last app.Outcome
	for i, answer := range answers {
		outcome, err := session.SubmitAnswer(answer)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if outcome.Position != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, outcome.Position)
		}
		if len(session.Answers()) != session.Position() {
			t.Fatalf("answer log length %d != position %d", len(session.Answers()), session.Position())
		}
		last = outcome
	}

	if !last.Finished {
		t.Fatalf("expected finish after %d answers", len(answers))
	}
	if last.Result.Score != 2 || last.Result.MaxScore != 4 {
		t.Fatalf("expected 2/4, got %v/%v", last.Result.Score, last.Result.MaxScore)
	}
	if len(last.Result.Answers) != 3 {
		t.Fatalf("expected 3 answer records, got %d", len(last.Result.Answers))
	}
}

func TestOffListAnswerIsRecordedNotRejected(t *testing.T) {
	session := startTestSession(t, []domain.Question{mathQuestion()})

	outcome, err := session.SubmitAnswer("banana")
	if err != nil {
		t.Fatalf("expected off-list answer to be accepted, got %v", err)
	}
	record := outcome.Answer
	if record.IsCorrect || record.PointsAwarded != 0 {
		t.Fatalf("expected incorrect zero-point record, got %+v", record)
	}
	if record.SelectedOption != "banana" {
		t.Fatalf("expected selection captured verbatim, got %q", record.SelectedOption)
	}
}

func TestSubmitAfterCompletionLeavesStateUnchanged(t *testing.T) {
	session := startTestSession(t, []domain.Question{mathQuestion()})
	if _, err := session.SubmitAnswer("4"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := session.SubmitAnswer("4")
	if !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
	if session.Score() != 1 || session.Position() != 1 || len(session.Answers()) != 1 {
		t.Fatalf("expected state untouched, got score=%v position=%d answers=%d",
			session.Score(), session.Position(), len(session.Answers()))
	}

	if _, err := session.CurrentQuestion(); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted from CurrentQuestion, got %v", err)
	}
}

func TestStartRejectsEmptySet(t *testing.T) {
	_, err := app.StartSession("u1", "set-1", nil)
	if !errors.Is(err, domain.ErrInvalidQuestionSet) {
		t.Fatalf("expected ErrInvalidQuestionSet, got %v", err)
	}
}

func TestStartRejectsAnswerOutsideOptions(t *testing.T) {
	bad := mathQuestion()
	bad.CorrectAnswer = "42"

	_, err := app.StartSession("u1", "set-1", []domain.Question{bad})
	if !errors.Is(err, domain.ErrInvalidQuestionSet) {
		t.Fatalf("expected ErrInvalidQuestionSet, got %v", err)
	}
}

func TestSessionSnapshotsQuestions(t *testing.T) {
	questions := []domain.Question{mathQuestion()}
	session := startTestSession(t, questions)

	// Edits to the caller's slice must not reach the in-flight session.
	questions[0].CorrectAnswer = "5"
	questions[0].Text = "tampered"

	outcome, err := session.SubmitAnswer("4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Answer.IsCorrect {
		t.Fatalf("expected snapshot to keep original correct answer")
	}
	if outcome.Answer.QuestionText != "2+2?" {
		t.Fatalf("expected snapshot text, got %q", outcome.Answer.QuestionText)
	}
}

func TestCompletionTimestampUsesClock(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	session, err := app.StartSessionWithClock("u1", "set-1", []domain.Question{mathQuestion()}, func() time.Time { return fixed })
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	outcome, err := session.SubmitAnswer("4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Result.CompletedAt.Equal(fixed) {
		t.Fatalf("expected completion at %v, got %v", fixed, outcome.Result.CompletedAt)
	}
}

func TestAdvanceCarriesNextQuestion(t *testing.T) {
	questions := threeQuestions()
	session := startTestSession(t, questions)

	outcome, err := session.SubmitAnswer(questions[0].CorrectAnswer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Finished {
		t.Fatalf("expected session still in progress")
	}
	if outcome.Next == nil || outcome.Next.ID != questions[1].ID {
		t.Fatalf("expected next question %q, got %+v", questions[1].ID, outcome.Next)
	}
	if outcome.Result != nil {
		t.Fatalf("expected no result before completion")
	}
}

func TestAlternativePolicySubstitutes(t *testing.T) {
	halfCredit := func(q domain.Question, selected string) (bool, float64) {
		if selected == q.CorrectAnswer {
			return true, q.Marks
		}
		return false, q.Marks / 2
	}

	session := startTestSession(t, []domain.Question{mathQuestion()}).WithPolicy(halfCredit)

	outcome, err := session.SubmitAnswer("3")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Answer.IsCorrect || outcome.Answer.PointsAwarded != 0.5 {
		t.Fatalf("expected half credit, got %+v", outcome.Answer)
	}
	if outcome.Result.Score != 0.5 {
		t.Fatalf("expected score 0.5, got %v", outcome.Result.Score)
	}
}

func startTestSession(t *testing.T, questions []domain.Question) *app.Session {
	t.Helper()
	session, err := app.StartSession("u1", "set-1", questions)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return session
}

func mathQuestion() domain.Question {
	return domain.Question{
		ID:            "q1",
		Text:          "2+2?",
		Options:       []string{"3", "4", "5"},
		CorrectAnswer: "4",
		Marks:         1,
	}
}

func threeQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", Marks: 1},
		{ID: "q2", Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris", Marks: 2},
		{ID: "q3", Text: "3*3?", Options: []string{"6", "9"}, CorrectAnswer: "9", Marks: 1},
	}
}
