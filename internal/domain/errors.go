package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError rejects a submission before any network call. Fields lists
// every offending form field in sorted order; Problems holds a user-facing
// message per field.
type ValidationError struct {
	Kind     Kind
	Fields   []string
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Problems[f]))
	}
	return fmt.Sprintf("invalid %s request: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) add(field, problem string) {
	if e.Problems == nil {
		e.Problems = make(map[string]string)
	}
	if _, seen := e.Problems[field]; !seen {
		e.Fields = append(e.Fields, field)
	}
	e.Problems[field] = problem
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) sort() { sort.Strings(e.Fields) }

// TransportErrorKind tags why an inference call produced no usable body.
type TransportErrorKind string

const (
	NetworkUnavailable TransportErrorKind = "network_unavailable"
	Timeout            TransportErrorKind = "timeout"
	ServerError        TransportErrorKind = "server_error"
	MalformedJSON      TransportErrorKind = "malformed_json"
)

// TransportError reports a failed inference call. Status is set only for
// ServerError.
type TransportError struct {
	Kind   TransportErrorKind
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Kind == ServerError:
		return fmt.Sprintf("inference api: %s: status %d", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("inference api: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("inference api: %s", e.Kind)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// NormalizationError means a live response carried no primary metric under
// any recognized shape.
type NormalizationError struct {
	Kind   Kind
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s response: %s", e.Kind, e.Reason)
}

// FallbackError signals a missing fallback template. It indicates a
// programming defect and fails the submission.
type FallbackError struct {
	Kind Kind
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("no fallback template for kind %q", e.Kind)
}
