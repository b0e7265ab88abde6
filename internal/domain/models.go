package domain

import "time"

// SessionStatus enumerates the states of an attempt session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Question is a single multiple-choice question. Options are kept in display
// order; CorrectAnswer must equal one of them by value.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Marks         float64  `json:"marks"`
}

// QuestionSet is the ordered list of questions presented in one session.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// MaxScore is the highest score a full pass through the set can earn.
func (s QuestionSet) MaxScore() float64 {
	var total float64
	for _, q := range s.Questions {
		total += q.Marks
	}
	return total
}

// AnswerRecord captures one submitted answer. Question text and the correct
// option are copied at submission time so later edits to the question bank
// cannot rewrite history.
type AnswerRecord struct {
	QuestionID     string  `json:"questionId"`
	QuestionText   string  `json:"questionText"`
	SelectedOption string  `json:"selectedOption"`
	CorrectOption  string  `json:"correctOption"`
	IsCorrect      bool    `json:"isCorrect"`
	PointsAwarded  float64 `json:"pointsAwarded"`
}

// AttemptResult is the finalized outcome of one completed session. It is
// immutable once built, so it can be resubmitted verbatim if recording fails.
type AttemptResult struct {
	SubjectID     string         `json:"subjectId"`
	QuestionSetID string         `json:"questionSetId"`
	Score         float64        `json:"score"`
	MaxScore      float64        `json:"maxScore"`
	Answers       []AnswerRecord `json:"answers"`
	CompletedAt   time.Time      `json:"completedAt"`
}
