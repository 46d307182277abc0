// Package lvmip is a small, readable solver for linear and 0/1 mixed-integer
// programs: a dense simplex tableau with primal and dual pivoting, driven by
// a breadth-first branch-and-bound search.
//
// 🚀 What is lvmip?
//
//	A pure-Go toolkit that brings together:
//		• Canonical form: ≤/≥/= rows, slack & surplus columns, b ≥ 0, sign tags
//		• Simplex tableau: Dantzig or Bland pivoting, primal and dual drivers
//		• Branch-and-bound: FIFO queue, bounding, incumbent, resource guards
//		• Structured trace: every pivot and node as an event (logrus, logr, prometheus)
//		• Model files: YAML/JSON in, YAML reports out
//
// ✨ Why choose lvmip?
//
//   - Every pivot is observable: run id, node, depth and path on each event
//   - Verdicts are explicit: Optimal, Feasible, Infeasible, Unbounded, NotSolved
//     plus an error kind telling a truncated search from an empty region
//   - No cgo: the grid is a gonum mat.Dense
//
// Under the hood, everything is organized under these subpackages:
//
//	model/     Model, Result, Status, ErrorKind and validation
//	simplex/   Convert, Tableau, SolvePrimal / SolveDual / Solve
//	bnb/       branch-and-bound Engine over simplex relaxations
//	trace/     Event, Sink, Scope and the logging/metrics sinks
//	modelio/   YAML/JSON model files and result reports
//	cmd/lvmip  command-line front end
//
// Quick example:
//
//	max 3x1 + 2x2
//	    x1 + x2 ≤ 4
//	    x1      ≤ 2
//	         x2 ≤ 3       → z = 10 at (2, 2)
//
// Limits are deliberate: 20 pivots per simplex solve, 15 nodes and one
// minute per search, integer variables relaxed to [0,1], no Phase I for
// equality rows.
//
//	go get github.com/katalvlaran/lvmip
package lvmip
