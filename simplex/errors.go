// SPDX-License-Identifier: MIT
// Package simplex: sentinel error set.
// Errors leave this package wrapped in *model.Error so callers can read the
// ErrorKind; errors.Is still matches the sentinels below.

package simplex

import "errors"

var (
	// ErrSingularPivot is returned when |pivot| < Eps.
	ErrSingularPivot = errors.New("simplex: pivot element is numerically zero")

	// ErrEqualityRow is returned when a tableau is built for a model with an
	// equality row: there is no slack column to start the basis from and no
	// Phase-I is performed.
	ErrEqualityRow = errors.New("simplex: equality rows are not supported")

	// ErrOutOfRange is returned when a pivot position lies outside the grid.
	ErrOutOfRange = errors.New("simplex: pivot position out of range")

	// ErrUnknownMethod is returned for a Method value outside Auto/Primal/Dual.
	ErrUnknownMethod = errors.New("simplex: unknown method")
)
