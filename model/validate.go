// Package model - validation and evaluation helpers.
//
// Validation runs in stages and stops at the first violation:
//  1. Tags: sense, relations, kinds must be known values.
//  2. Shape: len(C) > 0, len(A) = len(Relations) = len(B), every row len n.
//  3. Values: every coefficient finite.
//
// Evaluation helpers are side-effect free and O(m·n).
package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Validate checks every Model invariant and returns an error wrapping
// ErrMalformedModel (or ErrEmptyModel) that names the first violation.
//
// Complexity: O(m·n).
func (m Model) Validate() error {
	var (
		n = len(m.C)
		k = len(m.A)
		i int
	)

	// Stage 1: tags.
	if m.Sense != Maximize && m.Sense != Minimize {
		return errors.Wrapf(ErrMalformedModel, "unknown sense %d", int(m.Sense))
	}
	for i = range m.Relations {
		if r := m.Relations[i]; r < LessEq || r > Equal {
			return errors.Wrapf(ErrMalformedModel, "row %d: unknown relation %d", i, int(r))
		}
	}
	for i = range m.Kinds {
		if v := m.Kinds[i]; v < NonNegative || v > Binary {
			return errors.Wrapf(ErrMalformedModel, "var %d: unknown kind %d", i, int(v))
		}
	}

	// Stage 2: shape.
	if n == 0 {
		return ErrEmptyModel
	}
	if len(m.Relations) != k || len(m.B) != k {
		return errors.Wrapf(ErrMalformedModel,
			"rows: len(A)=%d len(Relations)=%d len(B)=%d", k, len(m.Relations), len(m.B))
	}
	if m.Kinds != nil && len(m.Kinds) != n {
		return errors.Wrapf(ErrMalformedModel, "len(Kinds)=%d, want %d", len(m.Kinds), n)
	}
	if m.Names != nil && len(m.Names) != n {
		return errors.Wrapf(ErrMalformedModel, "len(Names)=%d, want %d", len(m.Names), n)
	}
	if m.RowNames != nil && len(m.RowNames) != k {
		return errors.Wrapf(ErrMalformedModel, "len(RowNames)=%d, want %d", len(m.RowNames), k)
	}
	for i = 0; i < k; i++ {
		if len(m.A[i]) != n {
			return errors.Wrapf(ErrMalformedModel, "row %d has %d coefficients, want %d", i, len(m.A[i]), n)
		}
	}

	// Stage 3: values.
	if !allFinite(m.C) {
		return errors.Wrap(ErrMalformedModel, "objective has NaN or Inf")
	}
	if !allFinite(m.B) {
		return errors.Wrap(ErrMalformedModel, "rhs has NaN or Inf")
	}
	for i = 0; i < k; i++ {
		if !allFinite(m.A[i]) {
			return errors.Wrapf(ErrMalformedModel, "row %d has NaN or Inf", i)
		}
	}

	return nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// Matrix returns A as an m×n gonum Dense (nil when m = 0).
func (m Model) Matrix() *mat.Dense {
	k, n := len(m.A), len(m.C)
	if k == 0 || n == 0 {
		return nil
	}
	out := mat.NewDense(k, n, nil)
	for i, row := range m.A {
		out.SetRow(i, row)
	}

	return out
}

// Objective returns cᵀx.
func (m Model) Objective(x []float64) (float64, error) {
	if len(x) != len(m.C) {
		return 0, ErrVectorLength
	}

	return floats.Dot(m.C, x), nil
}

// RowActivity returns A[i]·x.
func (m Model) RowActivity(i int, x []float64) (float64, error) {
	if i < 0 || i >= len(m.A) || len(x) != len(m.A[i]) {
		return 0, ErrVectorLength
	}

	return floats.Dot(m.A[i], x), nil
}

// Satisfies reports whether x meets every row and sign tag within tol.
// Integrality is not checked; see IsIntegral.
func (m Model) Satisfies(x []float64, tol float64) bool {
	if len(x) != len(m.C) {
		return false
	}
	for j, v := range x {
		switch m.Kind(j) {
		case NonPositive:
			if v > tol {
				return false
			}
		case Free:
		default:
			if v < -tol {
				return false
			}
		}
	}
	for i, row := range m.A {
		act := floats.Dot(row, x)
		switch m.Relations[i] {
		case LessEq:
			if act > m.B[i]+tol {
				return false
			}
		case GreaterEq:
			if act < m.B[i]-tol {
				return false
			}
		case Equal:
			if math.Abs(act-m.B[i]) > tol {
				return false
			}
		}
	}

	return true
}

// IsIntegral reports whether every Integer/Binary variable of x lies within
// tol of an integer.
func (m Model) IsIntegral(x []float64, tol float64) bool {
	for _, j := range m.IntegerVars() {
		if j >= len(x) || math.Abs(x[j]-math.Round(x[j])) > tol {
			return false
		}
	}

	return true
}
