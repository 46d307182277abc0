// SPDX-License-Identifier: MIT

package model

import "fmt"

// Status is a solver verdict.
type Status int

const (
	// NotSolved means no verdict was reached (budget exhausted or structural failure).
	NotSolved Status = iota
	// Optimal means X is a proven optimum.
	Optimal
	// Feasible means X satisfies every constraint but optimality is unproven.
	Feasible
	// Infeasible means no point satisfies the constraints.
	Infeasible
	// Unbounded means the objective improves without limit.
	Unbounded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case NotSolved:
		return "NotSolved"
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrorKind explains why a solve ended without a definitive verdict.
// KindNone accompanies every clean verdict, including Infeasible and Unbounded.
type ErrorKind int

const (
	// KindNone means the status is a verdict, not a failure.
	KindNone ErrorKind = iota
	// KindMalformedModel means the model failed validation.
	KindMalformedModel
	// KindNumericallySingular means a pivot element vanished.
	KindNumericallySingular
	// KindSearchExhausted means branch-and-bound stopped on a node, queue,
	// time or cancellation limit before the tree was closed.
	KindSearchExhausted
	// KindIterationLimit means simplex hit its pivot cap.
	KindIterationLimit
	// KindUnsupported means the model uses a feature outside the solver's
	// scope (equality rows without Phase-I).
	KindUnsupported
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindMalformedModel:
		return "MalformedModel"
	case KindNumericallySingular:
		return "NumericallySingular"
	case KindSearchExhausted:
		return "SearchExhausted"
	case KindIterationLimit:
		return "IterationLimit"
	case KindUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Result is the outcome of one solve call.
type Result struct {
	Status Status
	Kind   ErrorKind

	// X holds one value per original variable (nil unless Optimal or Feasible).
	X []float64

	// Objective is cᵀX in the model's own sense.
	Objective float64

	// Basis lists the basic canonical column of every tableau row.
	Basis []int

	// ReducedCosts holds the objective-row entry of every canonical column.
	ReducedCosts []float64

	// Duals holds the shadow price of every original constraint row.
	Duals []float64

	// Iterations counts simplex pivots (summed over all nodes for B&B).
	Iterations int

	// Nodes counts branch-and-bound nodes dequeued (0 for plain simplex).
	Nodes int

	// RootObjective is the relaxation value at the B&B root.
	RootObjective float64

	// RunID identifies the solve in trace output.
	RunID string

	// LogPath is set when the trace was written to disk.
	LogPath string

	// Warnings collects best-effort failures (trace persistence) that did not
	// affect Status.
	Warnings []string
}

// HasSolution reports whether X carries a usable point.
func (r Result) HasSolution() bool {
	return (r.Status == Optimal || r.Status == Feasible) && r.X != nil
}
