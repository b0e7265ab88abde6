package app

import (
	"context"
	"fmt"

	"course-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// QuestionSetRepository loads question-set snapshots (from cache/backing store).
type QuestionSetRepository interface {
	GetQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// AttemptRecorder durably stores a finalized attempt and returns its record id.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, result domain.AttemptResult) (string, error)
}

// SessionRegistry holds in-flight sessions so a transport can find its session
// between messages (in-memory, Redis-backed liveness, etc).
type SessionRegistry interface {
	Put(key string, session *Session)
	Get(key string) (*Session, bool)
	Delete(key string)
}

// AttemptService contains the attempt use cases: begin a session, answer
// through it, and record the result on completion.
type AttemptService struct {
	sets     QuestionSetRepository
	recorder AttemptRecorder
	sessions SessionRegistry
}

func NewAttemptService(sets QuestionSetRepository, recorder AttemptRecorder, sessions SessionRegistry) *AttemptService {
	return &AttemptService{sets: sets, recorder: recorder, sessions: sessions}
}

// BeginResult describes a freshly started session for a transport.
type BeginResult struct {
	SessionKey string
	Question   domain.Question
	Position   int
	Total      int
}

// Begin snapshots the question set and starts a session for the subject. The
// set is loaded exactly once here and never re-queried during the session, so
// concurrent edits to the question bank cannot affect the attempt.
func (s *AttemptService) Begin(ctx context.Context, subjectID, setID string) (BeginResult, error) {
	set, err := s.sets.GetQuestionSet(ctx, setID)
	if err != nil {
		return BeginResult{}, err
	}

	session, err := StartSession(subjectID, setID, set.Questions)
	if err != nil {
		return BeginResult{}, err
	}

	key := newSessionKey()
	s.sessions.Put(key, session)

	first, err := session.CurrentQuestion()
	if err != nil {
		return BeginResult{}, err
	}
	return BeginResult{
		SessionKey: key,
		Question:   first,
		Position:   session.Position(),
		Total:      session.Total(),
	}, nil
}

// Answer applies one submission to the keyed session. When the submission
// completes the session, the finalized attempt is handed to the recorder and
// the returned record id is non-empty. A recording failure is surfaced
// unchanged with the outcome (and its result) intact; the session stays
// completed and registered so the caller can Resubmit.
func (s *AttemptService) Answer(ctx context.Context, sessionKey, selected string) (Outcome, string, error) {
	session, ok := s.sessions.Get(sessionKey)
	if !ok {
		return Outcome{}, "", domain.ErrSessionNotFound
	}

	outcome, err := session.SubmitAnswer(selected)
	if err != nil {
		return Outcome{}, "", err
	}
	if !outcome.Finished {
		return outcome, "", nil
	}

	recordID, err := s.recorder.RecordAttempt(ctx, *outcome.Result)
	if err != nil {
		return outcome, "", err
	}
	s.sessions.Delete(sessionKey)
	return outcome, recordID, nil
}

// Resubmit retries the handoff of a completed session whose recording failed.
// The attempt result is immutable once built, so re-recording it verbatim is
// safe. On success the session is finally discarded.
func (s *AttemptService) Resubmit(ctx context.Context, sessionKey string) (string, error) {
	session, ok := s.sessions.Get(sessionKey)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	result := session.Result()
	if result == nil {
		return "", fmt.Errorf("session %s has not completed", sessionKey)
	}

	recordID, err := s.recorder.RecordAttempt(ctx, *result)
	if err != nil {
		return "", err
	}
	s.sessions.Delete(sessionKey)
	return recordID, nil
}

// Abandon drops the keyed session without recording anything.
func (s *AttemptService) Abandon(sessionKey string) {
	s.sessions.Delete(sessionKey)
}

// newSessionKey returns an opaque key unique per session, so two concurrent
// attempts by the same subject stay independent.
func newSessionKey() string {
	return uuid.NewString()
}
