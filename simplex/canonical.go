// Package simplex - canonical-form conversion.
//
// Convert expands a model.Model into augmented equality form:
//
//	max  C·z   s.t.  A z = B,  z ≥ 0,  B ≥ 0
//
// Column layout: structural columns first (one per NonNegative/NonPositive/
// Integer/Binary variable, two per Free variable), then one auxiliary column
// per ≤ (slack, +1) or ≥ (surplus, −1) row. Equality rows get no column.
//
// The per-row and per-variable index maps recorded here are the only way the
// tableau recovers original values and shadow prices; nothing downstream
// relies on column arithmetic such as "slack of row i is column n+i".
package simplex

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvmip/model"
)

// VarColumn locates an original variable in canonical columns:
// x = Sign·z[Col] − z[Neg] (the second term only when Neg ≥ 0).
type VarColumn struct {
	Col  int
	Sign float64
	Neg  int
}

// CanonicalForm is an immutable augmented-equality snapshot of a Model.
type CanonicalForm struct {
	C     []float64  // objective in maximization form, len Cols()
	A     *mat.Dense // NumConstraints × Cols(); nil when there are no rows
	B     []float64  // right-hand side, every entry ≥ 0
	Names []string   // one label per column

	NumOriginal    int  // n of the source model
	NumConstraints int  // m of the source model
	NumStructural  int  // columns before the first auxiliary column
	IsMaximization bool // false when C was negated from a minimization

	RowAux  []int       // auxiliary column of each row, −1 for equality rows
	AuxSign []float64   // +1 slack, −1 surplus, 0 none
	RowSign []float64   // −1 when the row was negated to make B ≥ 0
	VarMap  []VarColumn // one entry per original variable
}

// Cols returns the number of canonical columns.
func (cf *CanonicalForm) Cols() int { return len(cf.C) }

// NumSlack returns the number of +1 auxiliary columns.
func (cf *CanonicalForm) NumSlack() int { return cf.countAux(1) }

// NumSurplus returns the number of −1 auxiliary columns.
func (cf *CanonicalForm) NumSurplus() int { return cf.countAux(-1) }

func (cf *CanonicalForm) countAux(sign float64) int {
	n := 0
	for _, s := range cf.AuxSign {
		if s == sign {
			n++
		}
	}

	return n
}

// Recover maps a full canonical vector z back to original variable values.
func (cf *CanonicalForm) Recover(z []float64) []float64 {
	x := make([]float64, cf.NumOriginal)
	for j, vc := range cf.VarMap {
		x[j] = vc.Sign * z[vc.Col]
		if vc.Neg >= 0 {
			x[j] -= z[vc.Neg]
		}
	}

	return x
}

// Convert builds the CanonicalForm of m.
//
// Stages:
//  1. Validate m (errors wrap model.ErrMalformedModel, kind MalformedModel).
//  2. Lay out structural columns from the variable tags.
//  3. Append one auxiliary column per ≤ / ≥ row.
//  4. Fill coefficients; negate the objective for minimization.
//  5. Negate rows with negative RHS.
//
// Complexity: O(m·(n+m)) time and memory.
func Convert(m model.Model) (*CanonicalForm, error) {
	// Stage 1: validation.
	if err := m.Validate(); err != nil {
		return nil, model.WithKind(model.KindMalformedModel, errors.Wrap(err, "simplex: convert"))
	}

	var (
		n    = m.NumVars()
		rows = m.NumRows()
		cf   = &CanonicalForm{
			NumOriginal:    n,
			NumConstraints: rows,
			IsMaximization: m.Sense == model.Maximize,
			VarMap:         make([]VarColumn, n),
			RowAux:         make([]int, rows),
			AuxSign:        make([]float64, rows),
			RowSign:        make([]float64, rows),
		}
		col, i, j int
	)

	// Stage 2: structural columns.
	for j = 0; j < n; j++ {
		name := m.VarName(j)
		switch m.Kind(j) {
		case model.NonPositive:
			cf.VarMap[j] = VarColumn{Col: col, Sign: -1, Neg: -1}
			cf.Names = append(cf.Names, name+"'")
			col++
		case model.Free:
			cf.VarMap[j] = VarColumn{Col: col, Sign: 1, Neg: col + 1}
			cf.Names = append(cf.Names, name+"+", name+"-")
			col += 2
		default:
			cf.VarMap[j] = VarColumn{Col: col, Sign: 1, Neg: -1}
			cf.Names = append(cf.Names, name)
			col++
		}
	}
	cf.NumStructural = col

	// Stage 3: auxiliary columns.
	for i = 0; i < rows; i++ {
		cf.RowSign[i] = 1
		switch m.Relations[i] {
		case model.LessEq:
			cf.RowAux[i], cf.AuxSign[i] = col, 1
			cf.Names = append(cf.Names, fmt.Sprintf("s%d", i+1))
			col++
		case model.GreaterEq:
			cf.RowAux[i], cf.AuxSign[i] = col, -1
			cf.Names = append(cf.Names, fmt.Sprintf("e%d", i+1))
			col++
		default:
			cf.RowAux[i] = -1
		}
	}

	// Stage 4: objective and matrix.
	sense := 1.0
	if !cf.IsMaximization {
		sense = -1
	}
	cf.C = make([]float64, col)
	for j = 0; j < n; j++ {
		vc := cf.VarMap[j]
		cf.C[vc.Col] = sense * vc.Sign * m.C[j]
		if vc.Neg >= 0 {
			cf.C[vc.Neg] = -sense * m.C[j]
		}
	}
	cf.B = make([]float64, rows)
	if rows > 0 {
		cf.A = mat.NewDense(rows, col, nil)
	}
	for i = 0; i < rows; i++ {
		row := cf.A.RawRowView(i)
		for j = 0; j < n; j++ {
			vc := cf.VarMap[j]
			row[vc.Col] = vc.Sign * m.A[i][j]
			if vc.Neg >= 0 {
				row[vc.Neg] = -m.A[i][j]
			}
		}
		if k := cf.RowAux[i]; k >= 0 {
			row[k] = cf.AuxSign[i]
		}
		cf.B[i] = m.B[i]

		// Stage 5: non-negative RHS.
		if cf.B[i] < 0 {
			for j = range row {
				row[j] = -row[j]
			}
			cf.B[i] = -cf.B[i]
			cf.RowSign[i] = -1
		}
	}

	return cf, nil
}
