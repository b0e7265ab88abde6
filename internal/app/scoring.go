package app

import "course-quiz-service/internal/domain"

// ScorePolicy maps a submitted option and a question to (correct, points).
// Policies must be pure; the session calls them exactly once per submission.
type ScorePolicy func(q domain.Question, selected string) (bool, float64)

// ExactMatch awards the question's full marks on an exact, case-sensitive
// match against the correct answer and zero otherwise. No partial credit, no
// negative marking.
func ExactMatch(q domain.Question, selected string) (bool, float64) {
	if selected == q.CorrectAnswer {
		return true, q.Marks
	}
	return false, 0
}
