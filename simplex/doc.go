// Package simplex implements the tableau Simplex method used by lvmip.
//
// Pipeline:
//
//	model.Model ──Convert──▶ CanonicalForm ──NewTableau──▶ Tableau ──pivot loop──▶ model.Result
//
// Convert normalizes any sign/relation mix into augmented equality form with
// non-negative right-hand sides (slack for ≤, surplus for ≥, nothing for =).
// Minimization is folded into maximization by negating the objective; the
// CanonicalForm remembers the sense so the reported objective is un-negated.
//
// The Tableau starts from the all-auxiliary basis. Rows whose auxiliary
// column carries −1 are flipped so that basis columns are unit vectors; the
// price of that flip is a possibly negative RHS (primal infeasibility).
//
// Two drivers walk the tableau:
//
//   - SolvePrimal: Dantzig (or Bland) entering column, minimum-ratio leaving
//     row. Needs a primal-feasible start; a negative RHS is reported as
//     Infeasible without a Phase-I test.
//   - SolveDual: repairs primal feasibility first (most negative RHS leaves,
//     dual ratio test picks the entering column), then finishes with primal
//     pivots. A negative RHS row without a negative entry proves infeasibility.
//
// Solve picks between them from the starting basis.
//
// Limits and tolerances:
//
//   - Eps = 1e-10 for pivot eligibility, optimality and feasibility tests.
//   - Pivots per solve = min(Options.MaxIterations, HardPivotLimit=20).
//
// Equality rows have no auxiliary column and therefore no starting basis
// column; NewTableau rejects them with ErrEqualityRow (model.KindUnsupported).
//
// Complexity: each pivot is O(m·n) on the (m+1)×(n+1) grid.
package simplex
