package domain

import "fmt"

// Error types for consistent error handling across the client.
// The request adapter classifies every failed call into exactly one of
// these; callers match with errors.As instead of probing response shapes.

// ErrUnauthorized indicates the backend rejected the bearer token (401).
// The session has already been invalidated by the time a caller sees it.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrNotFound indicates the requested resource does not exist (404).
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// ErrValidation indicates the backend rejected the request as invalid
// (4xx other than 401/404). Message carries the backend's text when
// one was available.
type ErrValidation struct {
	Status  int
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected with status %d", e.Status)
}

// ErrTransport indicates the request never produced a response
// (connection refused, DNS failure, cancelled context).
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("transport error [%s]: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrUnknown indicates a response the adapter has no mapping for,
// typically a 5xx.
type ErrUnknown struct {
	Status int
	Body   string
}

func (e *ErrUnknown) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}
