package app

import (
	"fmt"
	"time"

	"course-quiz-service/internal/domain"
)

// Session tracks one subject's pass through a question set: current position,
// running score, and the per-question answer log. A session is exclusively
// owned by whichever execution context represents the subject's attempt, so it
// carries no locking of its own.
type Session struct {
	subjectID string
	setID     string
	questions []domain.Question
	position  int
	score     float64
	answers   []domain.AnswerRecord
	status    domain.SessionStatus
	policy    ScorePolicy
	now       func() time.Time
	result    *domain.AttemptResult
}

// Outcome is the explicit result of one SubmitAnswer transition.
type Outcome struct {
	Answer   domain.AnswerRecord
	Score    float64 // running total after this answer
	Position int     // questions answered so far
	Total    int
	Finished bool
	// Next is the upcoming question when Finished is false.
	Next *domain.Question
	// Result is the finalized attempt when Finished is true.
	Result *domain.AttemptResult
}

// StartSession validates the set and constructs an in-progress session. The
// question slice is snapshotted, so later edits to the caller's copy do not
// reach an in-flight session.
func StartSession(subjectID, setID string, questions []domain.Question) (*Session, error) {
	return StartSessionWithClock(subjectID, setID, questions, time.Now)
}

// StartSessionWithClock allows deterministic completion timestamps in tests.
func StartSessionWithClock(subjectID, setID string, questions []domain.Question, now func() time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("set %q is empty: %w", setID, domain.ErrInvalidQuestionSet)
	}
	for _, q := range questions {
		if !containsOption(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("question %q: correct answer not among options: %w", q.ID, domain.ErrInvalidQuestionSet)
		}
	}

	snapshot := make([]domain.Question, len(questions))
	copy(snapshot, questions)

	return &Session{
		subjectID: subjectID,
		setID:     setID,
		questions: snapshot,
		status:    domain.SessionInProgress,
		policy:    ExactMatch,
		now:       now,
	}, nil
}

// WithPolicy swaps the scoring policy. Only valid before the first answer.
func (s *Session) WithPolicy(policy ScorePolicy) *Session {
	if s.position == 0 {
		s.policy = policy
	}
	return s
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (domain.Question, error) {
	if s.status == domain.SessionCompleted {
		return domain.Question{}, domain.ErrSessionCompleted
	}
	return s.questions[s.position], nil
}

// SubmitAnswer scores the selected option against the current question,
// appends the answer record, and advances. Answering the final question
// completes the session and finalizes the attempt result. A selection that
// matches none of the options is still recorded, as incorrect with zero
// points; validating the selection is the caller's concern.
func (s *Session) SubmitAnswer(selected string) (Outcome, error) {
	if s.status == domain.SessionCompleted {
		return Outcome{}, domain.ErrSessionCompleted
	}

	q := s.questions[s.position]
	correct, points := s.policy(q, selected)

	record := domain.AnswerRecord{
		QuestionID:     q.ID,
		QuestionText:   q.Text,
		SelectedOption: selected,
		CorrectOption:  q.CorrectAnswer,
		IsCorrect:      correct,
		PointsAwarded:  points,
	}
	s.answers = append(s.answers, record)
	s.score += points
	s.position++

	outcome := Outcome{
		Answer:   record,
		Score:    s.score,
		Position: s.position,
		Total:    len(s.questions),
	}

	if s.position == len(s.questions) {
		s.status = domain.SessionCompleted
		s.result = &domain.AttemptResult{
			SubjectID:     s.subjectID,
			QuestionSetID: s.setID,
			Score:         s.score,
			MaxScore:      domain.QuestionSet{Questions: s.questions}.MaxScore(),
			Answers:       s.Answers(),
			CompletedAt:   s.now(),
		}
		outcome.Finished = true
		outcome.Result = s.result
		return outcome, nil
	}

	next := s.questions[s.position]
	outcome.Next = &next
	return outcome, nil
}

// Result returns the finalized attempt, or nil while the session is live. The
// completed session keeps it so a failed recording can be resubmitted.
func (s *Session) Result() *domain.AttemptResult {
	return s.result
}

// Answers returns a copy of the answer log.
func (s *Session) Answers() []domain.AnswerRecord {
	out := make([]domain.AnswerRecord, len(s.answers))
	copy(out, s.answers)
	return out
}

// SubjectID identifies who is taking the attempt.
func (s *Session) SubjectID() string { return s.subjectID }

// QuestionSetID identifies the set being attempted.
func (s *Session) QuestionSetID() string { return s.setID }

// Status reports whether the session is in progress or completed.
func (s *Session) Status() domain.SessionStatus { return s.status }

// Score is the running total of points awarded so far.
func (s *Session) Score() float64 { return s.score }

// Position is the number of questions answered so far.
func (s *Session) Position() int { return s.position }

// Total is the number of questions in the set.
func (s *Session) Total() int { return len(s.questions) }

func containsOption(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
