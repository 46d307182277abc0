// SPDX-License-Identifier: MIT
// Package model: sentinel error set.
// Callers match these with errors.Is; wrapping with context happens at the
// package boundary that detects the problem.

package model

import "errors"

var (
	// ErrMalformedModel indicates inconsistent dimensions, non-finite data or
	// an unknown sense/relation/kind tag.
	ErrMalformedModel = errors.New("model: malformed model")

	// ErrEmptyModel indicates a model with no decision variables.
	ErrEmptyModel = errors.New("model: no variables")

	// ErrVectorLength indicates that a point passed to an evaluation helper
	// does not have one entry per variable.
	ErrVectorLength = errors.New("model: vector length mismatch")
)

// Error attaches an ErrorKind to an underlying error so that callers can
// branch on the kind while errors.Is still reaches the sentinel.
type Error struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return "model: " + e.Kind.String()
	}

	return e.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// WithKind wraps err with kind; nil stays nil.
func WithKind(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the ErrorKind carried by err. Validation sentinels map to
// KindMalformedModel; any other untyped error also maps there, since only
// malformed input reaches a solver without a kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}

	return KindMalformedModel
}
