package domain

import "errors"

var (
	// ErrInvalidQuestionSet is returned when a session is started on an empty
	// set or one whose correct answer is missing from its options.
	ErrInvalidQuestionSet = errors.New("invalid question set")
	// ErrSessionCompleted is returned when an operation targets a session that
	// has already finished.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrSessionNotFound is returned when a session key has no live session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSetNotFound indicates no questions exist for the requested set.
	ErrSetNotFound = errors.New("question set not found")
	// ErrStorageUnavailable indicates the attempt store rejected a write.
	ErrStorageUnavailable = errors.New("attempt storage unavailable")
)
