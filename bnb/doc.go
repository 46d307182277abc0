// Package bnb provides a breadth-first branch-and-bound search for mixed
// 0/1 linear programs on top of the simplex package.
//
// What
//
//   - Builds the root relaxation of a model.Model: every variable becomes
//     continuous non-negative and one x_j ≤ 1 row is appended per variable,
//     so the search runs over the box [0,1]^n whatever the tags say.
//   - Integrality is tested on every original variable, tagged or not.
//   - Solves the root; a non-optimal root is returned as is, an integral
//     root is returned Optimal with Nodes = 0.
//   - Otherwise explores a FIFO queue of nodes. Each node is the root
//     relaxation plus the bounds accumulated along its path (x ≤ floor on
//     the left child "/L", x ≥ ceil on the right child "/R").
//   - Node outcomes: pruned-infeasible (relaxation not optimal),
//     pruned-bound (cannot beat the incumbent by more than Tolerance),
//     incumbent (strictly better integral point), leaf, branched.
//
// Termination
//
//	completed, incumbent      → Optimal
//	completed, no incumbent   → Infeasible
//	truncated, incumbent      → Feasible  + model.KindSearchExhausted
//	truncated, no incumbent   → NotSolved + model.KindSearchExhausted
//
//	A search is truncated by the node cap (min(MaxIterations, HardNodeLimit)),
//	the queue guard (len(queue) > MaxQueue), the time limit or ctx.
//
// Solver choice
//
//	The root and every node whose most recent bound is ≤ run simplex.Auto
//	(Primal from a feasible slack basis, Dual otherwise). A node whose most
//	recent bound is ≥ runs simplex.Dual. The chosen method is the Message of
//	each dequeued event.
//
// Determinism
//
//	Branching picks the variable with the largest fractional part (first
//	index on ties) and children are enqueued left before right, so the node
//	sequence and the trace are reproducible for a given model.
//
// Concurrency
//
//	An Engine holds configuration only. Every Solve call owns its search
//	arena (queue, incumbent, counters, trace scope), so one Engine may serve
//	concurrent calls.
//
// Complexity
//
//   - Nodes:  at most HardNodeLimit per call.
//   - Per node: one simplex solve, O(HardPivotLimit · m · n).
//
// Usage
//
//	eng, err := bnb.New(bnb.WithVerbose(sink), bnb.WithTimeLimit(5*time.Second))
//	if err != nil {
//	    // ErrOptionViolation
//	}
//	res, err := eng.Solve(ctx, m)
package bnb
