package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable signals a connectivity or timeout failure
	// talking to the recruiting API. Retryable by the caller.
	ErrUpstreamUnavailable = errors.New("search service unavailable")
	// ErrUpstreamStatus signals a non-success status from the recruiting API.
	ErrUpstreamStatus = errors.New("search service error")
	// ErrInvalidPayload signals an upstream payload that failed validation.
	// Non-retryable: the same payload will fail again.
	ErrInvalidPayload = errors.New("invalid upstream payload")
	// ErrNoActiveSession signals a pagination continuation with no prior query.
	ErrNoActiveSession = errors.New("no active search session")
	// ErrProfileNotFound signals a missing full profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrResolverUnavailable signals a failure of the conversational resolver.
	ErrResolverUnavailable = errors.New("resolver unavailable")
	// ErrChatDisabled signals that no resolver is configured.
	ErrChatDisabled = errors.New("chat is not configured")
)

// UpstreamStatusError wraps ErrUpstreamStatus with the status code returned upstream.
type UpstreamStatusError struct {
	Code int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d", ErrUpstreamStatus.Error(), e.Code)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstreamStatus }

// NewUpstreamStatus creates an upstream status error.
func NewUpstreamStatus(code int) error {
	return &UpstreamStatusError{Code: code}
}

// PayloadError wraps ErrInvalidPayload with the first structural violation.
// Detail is for logs only and must not be exposed to API clients.
type PayloadError struct {
	Detail string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPayload.Error(), e.Detail)
}

func (e *PayloadError) Unwrap() error { return ErrInvalidPayload }

// NewPayloadError creates a payload validation error.
func NewPayloadError(detail string) error {
	return &PayloadError{Detail: detail}
}
