package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrChatUnavailable is returned when no AI gateway is configured.
	ErrChatUnavailable = errors.New("chat functionality is not available")

	// ErrInvalidState marks a session blob that failed validation.
	ErrInvalidState = errors.New("invalid conversation state")

	// ErrNoActiveConversation is returned by operations that need an Active
	// conversation.
	ErrNoActiveConversation = errors.New("no active chat session")
)

// ValidationError reports an empty or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError wraps a store failure during approval.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "error creating project: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
