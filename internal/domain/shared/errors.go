// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrSourceUnavailable indicates the remote data source could not be
	// reached or returned a non-success outcome. The core never retries;
	// the caller decides what to do.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRecord indicates a raw record is missing a required field
	// or carries a value of the wrong type. It aborts the single
	// construction that observed it.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptyDataset indicates a chart or histogram was requested on an
	// empty submission or rating-change sequence. A usage error, not a crash.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNotLoaded indicates an operation needed a profile's lazily cached
	// sequence before it was loaded.
	ErrNotLoaded = errors.New("sequence not loaded")

	// ErrNoCandidates indicates the recommendation band contained no
	// eligible problems. A normal "no result" outcome.
	ErrNoCandidates = errors.New("no candidate problems")

	// ErrNotFound is returned when a registry lookup misses.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned on duplicate registration.
	ErrAlreadyExists = errors.New("entity already exists")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "contest", "stats", "codeforces"
	Op      string // Operation that failed, e.g., "VerdictHistogram"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsSourceUnavailable checks if the error came from the remote source.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsMalformedRecord checks if the error is a record construction failure.
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}

// IsNoCandidates checks if the error is an empty recommendation outcome.
func IsNoCandidates(err error) bool {
	return errors.Is(err, ErrNoCandidates)
}
