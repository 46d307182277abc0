// Package model defines the shared contract of every lvmip solver: the
// linear (mixed-integer) program a caller wants solved and the Result a
// solver hands back.
//
// A Model is stored in its natural, un-normalized shape:
//
//	max/min  cᵀx
//	s.t.     A[i]·x  (≤ | ≥ | =)  b[i]      i = 0..m-1
//	         x[j] tagged NonNegative | NonPositive | Free | Integer | Binary
//
// Normalization (slack/surplus columns, sign flips, objective negation) is
// the job of simplex.Convert; this package never rewrites a Model in place.
// Helpers such as WithRows and Relaxed return fresh copies so that a base
// relaxation can be shared between many branch-and-bound nodes.
//
// Results carry both a Status (the solver's verdict) and an ErrorKind (why a
// verdict could not be reached), so that "provably infeasible" and "search
// budget ran out" are never reported with the same code.
//
// Errors (sentinel):
//
//   - ErrMalformedModel  dimensions disagree, NaN/Inf data, unknown tags.
//   - ErrEmptyModel      no variables.
package model
