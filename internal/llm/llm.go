// Package llm holds the chat-completion client and its credential modes.
package llm

import (
	"context"
	"fmt"
)

// Client sends one chat-completion request and returns the raw
// completion text. Implementations make exactly one attempt per call.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompletionError reports a non-success response from the completion
// endpoint, carrying the status and body for diagnosis.
type CompletionError struct {
	StatusCode int
	Body       string
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion endpoint returned %d: %s", e.StatusCode, e.Body)
}

// TransportError reports a failure before a response was received:
// network errors and credential acquisition errors.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
