package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying failures for the tool boundary. All errors
// propagate uncaught; the hosting framework surfaces them to the caller.
var (
	// ErrInvalidArgument marks caller input that fails local validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a geocoding query that yielded zero candidates.
	ErrNotFound = errors.New("not found")

	// ErrIncompleteData marks an upstream response that succeeded but
	// omitted a section the use case requires.
	ErrIncompleteData = errors.New("incomplete upstream data")
)

// UpstreamError reports a non-success response or unparseable body from a
// collaborator API, carrying the upstream-reported reason when available.
type UpstreamError struct {
	API    string // "geocoding", "forecast", or "imagegen"
	Status int    // HTTP status code, 0 when the call itself failed
	Reason string // upstream "reason" field, empty if absent
	Err    error  // underlying transport or decode error, if any
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s API error: %s", e.API, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s API error: %v", e.API, e.Err)
	default:
		return fmt.Sprintf("%s API error: status %d", e.API, e.Status)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }
