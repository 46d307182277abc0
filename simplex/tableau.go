package simplex

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmip/model"
)

// Tableau is the mutable (m+1)×(n+1) pivoting grid of a CanonicalForm.
//
// Layout: rows 0..m−1 are constraints, row m is the objective row (stored as
// −C so that a negative entry marks an improving column); columns 0..n−1 are
// variables, column n is the RHS. basis[i] is the basic column of row i.
type Tableau struct {
	grid  *mat.Dense
	basis []int
	flip  []float64 // −1 when the row was negated to make its basis column +1
	m, n  int
	rule  PivotRule
	cf    *CanonicalForm
}

// NewTableau builds the starting tableau with every row's auxiliary column in
// the basis. Rows whose auxiliary coefficient is −1 (surplus rows, or slack
// rows negated for a negative RHS) are flipped; their RHS becomes negative.
//
// Errors: ErrEqualityRow (kind Unsupported) when a row has no auxiliary column.
//
// Complexity: O(m·n).
func NewTableau(cf *CanonicalForm, rule PivotRule) (*Tableau, error) {
	var (
		m = cf.NumConstraints
		n = cf.Cols()
		t = &Tableau{
			grid:  mat.NewDense(m+1, n+1, nil),
			basis: make([]int, m),
			flip:  make([]float64, m),
			m:     m,
			n:     n,
			rule:  rule,
			cf:    cf,
		}
		i int
	)
	for i = 0; i < m; i++ {
		k := cf.RowAux[i]
		if k < 0 {
			return nil, model.WithKind(model.KindUnsupported,
				errors.Wrapf(ErrEqualityRow, "row %d", i))
		}
		row := t.grid.RawRowView(i)
		copy(row, cf.A.RawRowView(i))
		row[n] = cf.B[i]
		t.flip[i] = 1
		if row[k] < 0 {
			floats.Scale(-1, row)
			t.flip[i] = -1
		}
		t.basis[i] = k
	}
	obj := t.grid.RawRowView(m)
	for j, c := range cf.C {
		obj[j] = -c
	}

	return t, nil
}

// Rows returns the number of constraint rows m.
func (t *Tableau) Rows() int { return t.m }

// Cols returns the number of variable columns n (RHS excluded).
func (t *Tableau) Cols() int { return t.n }

// Value returns the grid entry at (row, col); row m is the objective row and
// col n the RHS column.
func (t *Tableau) Value(row, col int) float64 { return t.grid.At(row, col) }

// RHS returns the right-hand side of constraint row i.
func (t *Tableau) RHS(i int) float64 { return t.grid.At(i, t.n) }

// Basis returns a copy of the basis map.
func (t *Tableau) Basis() []int { return append([]int(nil), t.basis...) }

// Form returns the canonical form the tableau was built from.
func (t *Tableau) Form() *CanonicalForm { return t.cf }

// EnteringColumn returns the improving column or −1 when none exists.
// Dantzig: most negative objective entry, lowest index on ties.
// Bland: lowest index with a negative objective entry.
func (t *Tableau) EnteringColumn() int {
	var (
		obj  = t.grid.RawRowView(t.m)
		best = -Eps
		col  = -1
	)
	for j := 0; j < t.n; j++ {
		if obj[j] >= -Eps {
			continue
		}
		if t.rule == Bland {
			return j
		}
		if obj[j] < best {
			best, col = obj[j], j
		}
	}

	return col
}

// LeavingRow runs the minimum-ratio test on col over rows with an entry
// greater than Eps. Ties go to the lowest row (Dantzig) or to the row whose
// basic column has the lowest index (Bland). Returns −1 when no row qualifies.
func (t *Tableau) LeavingRow(col int) int {
	var (
		best = math.Inf(1)
		row  = -1
	)
	for i := 0; i < t.m; i++ {
		a := t.grid.At(i, col)
		if a <= Eps {
			continue
		}
		ratio := t.grid.At(i, t.n) / a
		switch {
		case row < 0 || ratio < best-Eps:
			best, row = ratio, i
		case t.rule == Bland && math.Abs(ratio-best) <= Eps && t.basis[i] < t.basis[row]:
			best, row = ratio, i
		}
	}

	return row
}

// DualLeavingRow returns the row with the most negative RHS (lowest index on
// ties), or −1 when the basis is primal feasible.
func (t *Tableau) DualLeavingRow() int {
	var (
		best = -Eps
		row  = -1
	)
	for i := 0; i < t.m; i++ {
		if b := t.grid.At(i, t.n); b < best {
			best, row = b, i
		}
	}

	return row
}

// DualEnteringColumn runs the dual ratio test on row: among columns with an
// entry below −Eps it picks the smallest |objective / entry|, lowest index on
// ties. Returns −1 when the row has no negative entry, which proves the
// current constraint system infeasible.
func (t *Tableau) DualEnteringColumn(row int) int {
	var (
		r    = t.grid.RawRowView(row)
		obj  = t.grid.RawRowView(t.m)
		best = math.Inf(1)
		col  = -1
	)
	for j := 0; j < t.n; j++ {
		if r[j] >= -Eps {
			continue
		}
		if ratio := math.Abs(obj[j] / r[j]); ratio < best-Eps || col < 0 {
			best, col = ratio, j
		}
	}

	return col
}

// Pivot makes (row, col) basic: the pivot row is divided by the pivot element
// and col is eliminated from every other row, objective row included.
//
// Errors: ErrOutOfRange (kind MalformedModel), ErrSingularPivot (kind
// NumericallySingular) when |pivot| < Eps.
//
// Complexity: O(m·n).
func (t *Tableau) Pivot(row, col int) error {
	if row < 0 || row >= t.m || col < 0 || col >= t.n {
		return model.WithKind(model.KindMalformedModel,
			errors.Wrapf(ErrOutOfRange, "pivot (%d,%d) on %dx%d", row, col, t.m, t.n))
	}
	var (
		prow = t.grid.RawRowView(row)
		p    = prow[col]
	)
	if math.Abs(p) < Eps {
		return model.WithKind(model.KindNumericallySingular,
			errors.Wrapf(ErrSingularPivot, "pivot (%d,%d) = %g", row, col, p))
	}
	floats.Scale(1/p, prow)
	prow[col] = 1
	for i := 0; i <= t.m; i++ {
		if i == row {
			continue
		}
		r := t.grid.RawRowView(i)
		if f := r[col]; f != 0 {
			floats.AddScaled(r, -f, prow)
			r[col] = 0
		}
	}
	t.basis[row] = col

	return nil
}

// IsOptimal reports whether every objective-row entry is ≥ −Eps.
func (t *Tableau) IsOptimal() bool {
	obj := t.grid.RawRowView(t.m)
	for j := 0; j < t.n; j++ {
		if obj[j] < -Eps {
			return false
		}
	}

	return true
}

// IsUnbounded reports whether every constraint entry of col is ≤ Eps, i.e.
// no leaving row can ever exist for it.
func (t *Tableau) IsUnbounded(col int) bool {
	for i := 0; i < t.m; i++ {
		if t.grid.At(i, col) > Eps {
			return false
		}
	}

	return true
}

// IsPrimalFeasible reports whether every constraint RHS is ≥ −Eps.
func (t *Tableau) IsPrimalFeasible() bool { return t.DualLeavingRow() < 0 }

// BasicSolution returns the full canonical vector (basic variables read from
// the RHS column, non-basic = 0) and the objective in the model's own sense.
func (t *Tableau) BasicSolution() ([]float64, float64) {
	z := make([]float64, t.n)
	for i, col := range t.basis {
		z[col] = t.grid.At(i, t.n)
	}

	return z, t.Objective()
}

// Objective returns the objective-row RHS, un-negated for minimization.
func (t *Tableau) Objective() float64 {
	v := t.grid.At(t.m, t.n)
	if !t.cf.IsMaximization {
		return -v
	}

	return v
}

// ReducedCosts returns the objective-row entry of every column. At an optimum
// all entries are ≥ 0 for both senses.
func (t *Tableau) ReducedCosts() []float64 {
	return append([]float64(nil), t.grid.RawRowView(t.m)[:t.n]...)
}

// DualValues returns one shadow price per canonical constraint row, in the
// model's own sense. The auxiliary column of row i is a unit vector in the
// starting tableau, so its objective entry is the dual of the transformed row;
// AuxSign undoes the combined RHS negation and basis flip, and the sense sign
// undoes the objective negation of a minimization.
func (t *Tableau) DualValues() []float64 {
	var (
		obj   = t.grid.RawRowView(t.m)
		out   = make([]float64, t.m)
		sense = 1.0
	)
	if !t.cf.IsMaximization {
		sense = -1
	}
	for i := 0; i < t.m; i++ {
		k := t.cf.RowAux[i]
		out[i] = sense * t.cf.AuxSign[i] * obj[k]
	}

	return out
}

// String renders the grid with column labels for debugging.
func (t *Tableau) String() string {
	var b strings.Builder
	b.WriteString("basis")
	for _, name := range t.cf.Names {
		fmt.Fprintf(&b, "\t%s", name)
	}
	b.WriteString("\trhs\n")
	for i := 0; i <= t.m; i++ {
		if i < t.m {
			b.WriteString(t.cf.Names[t.basis[i]])
		} else {
			b.WriteString("z")
		}
		for _, v := range t.grid.RawRowView(i) {
			fmt.Fprintf(&b, "\t%.4g", v)
		}
		b.WriteString("\n")
	}

	return b.String()
}
