// SPDX-License-Identifier: MIT
// Package modelio: sentinel error set.

package modelio

import "errors"

var (
	// ErrSyntax indicates a document that is not valid YAML for the schema.
	ErrSyntax = errors.New("modelio: malformed document")

	// ErrUnknownSense indicates a sense other than max/min.
	ErrUnknownSense = errors.New("modelio: unknown sense")

	// ErrUnknownRelation indicates a relation other than <=, >= or =.
	ErrUnknownRelation = errors.New("modelio: unknown relation")

	// ErrUnknownKind indicates an unknown variable kind.
	ErrUnknownKind = errors.New("modelio: unknown variable kind")
)

// SyntaxError wraps the decoder failure behind ErrSyntax. errors.Is matches
// ErrSyntax and errors.As still reaches the decoder error (*yaml.TypeError).
type SyntaxError struct {
	Err error
}

// Error implements error.
func (e *SyntaxError) Error() string { return ErrSyntax.Error() + ": " + e.Err.Error() }

// Unwrap returns the decoder error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
