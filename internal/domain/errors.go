package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput flags a request the caller can fix by changing its input.
var ErrInvalidInput = errors.New("invalid input")

// ConfigurationError reports missing or malformed credentials or settings.
// The user must fix their local configuration; retrying will not help.
type ConfigurationError struct {
	Field  string // header or setting name, ex: "Authorization"
	Reason string
}

func (e ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

// Is enables errors.Is matching on ConfigurationError.
func (e ConfigurationError) Is(target error) bool {
	switch target.(type) {
	case ConfigurationError, *ConfigurationError:
		return true
	}
	return false
}

// ErrConfiguration is the sentinel error for configuration problems.
var ErrConfiguration = ConfigurationError{}

// NotFoundError represents a missing resource.
// The document store absorbs it on reads; everywhere else it propagates.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	switch target.(type) {
	case NotFoundError, *NotFoundError:
		return true
	}
	return false
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// UpstreamServiceError wraps a failed call to an external service
// (github, model, kit, fetch) with whatever the service reported.
type UpstreamServiceError struct {
	Service    string
	StatusCode int // 0 when no HTTP response was received
	Detail     string
	Err        error
}

func (e UpstreamServiceError) Error() string {
	msg := e.Service + " request failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e UpstreamServiceError) Unwrap() error { return e.Err }

// Is enables errors.Is matching on UpstreamServiceError.
func (e UpstreamServiceError) Is(target error) bool {
	switch target.(type) {
	case UpstreamServiceError, *UpstreamServiceError:
		return true
	}
	return false
}

// ErrUpstream is the sentinel error for failing external services.
var ErrUpstream = UpstreamServiceError{}

// ParseError reports generated or stored content that is not in the
// expected structured shape.
type ParseError struct {
	Input string
	Err   error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }

// Is enables errors.Is matching on ParseError.
func (e ParseError) Is(target error) bool {
	switch target.(type) {
	case ParseError, *ParseError:
		return true
	}
	return false
}

// ErrParse is the sentinel error for unparsable content.
var ErrParse = ParseError{}
