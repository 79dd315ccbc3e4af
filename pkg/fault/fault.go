// Package fault defines the stable, caller-visible error kinds used across
// the service. Handlers map kinds to HTTP statuses; internal errors are
// wrapped so that no stack traces or driver details reach the caller.
package fault

import (
	"errors"
	"fmt"
)

// Kind is a stable machine-readable error tag.
type Kind string

const (
	// UnresolvedDrugName is returned when a drug name is empty after
	// normalization. Well-formed unknown names are not an error.
	UnresolvedDrugName Kind = "unresolved_drug_name"
	// TooManyDrugs is returned when a drug-check request exceeds the
	// supported set size.
	TooManyDrugs Kind = "too_many_drugs"
	// TooFewDrugs is returned when a drug-check request carries fewer than
	// two names before canonicalization.
	TooFewDrugs Kind = "too_few_drugs"
	// GenerationUnavailable covers failures of the external model,
	// embedding, or vector index collaborators.
	GenerationUnavailable Kind = "generation_unavailable"
	// KnowledgeLookupTimeout marks a knowledge-source lookup that did not
	// answer in time. Treated as a cache miss by the resolver.
	KnowledgeLookupTimeout Kind = "knowledge_lookup_timeout"
	// NotFound covers lookups of records that do not exist.
	NotFound Kind = "not_found"
)

// Error carries a kind tag and a human-readable message, optionally wrapping
// an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is makes two fault errors equal when their kinds match, so callers can use
// errors.Is(err, fault.New(fault.TooManyDrugs, "")).
func (e *Error) Is(target error) bool {
	var fe *Error
	if errors.As(target, &fe) {
		return e.Kind == fe.Kind
	}
	return false
}

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with the given kind and formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// KindOf returns the kind of err if it is (or wraps) a fault error, or ""
// otherwise.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
