// SPDX-License-Identifier: MIT

package model

import "fmt"

// Sense is the optimization direction of a Model.
type Sense int

const (
	// Maximize asks for the largest objective value.
	Maximize Sense = iota
	// Minimize asks for the smallest objective value.
	Minimize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Better reports whether objective a is strictly better than b by more than tol
// in the direction of s.
func (s Sense) Better(a, b, tol float64) bool {
	if s == Minimize {
		return a < b-tol
	}

	return a > b+tol
}

// Relation is the comparison operator of a constraint row.
type Relation int

const (
	// LessEq is A[i]·x ≤ b[i].
	LessEq Relation = iota
	// GreaterEq is A[i]·x ≥ b[i].
	GreaterEq
	// Equal is A[i]·x = b[i].
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// VarKind is the sign/type tag of a decision variable.
type VarKind int

const (
	// NonNegative is a continuous variable with x ≥ 0 (the zero value).
	NonNegative VarKind = iota
	// NonPositive is a continuous variable with x ≤ 0.
	NonPositive
	// Free is a continuous variable without sign restriction.
	Free
	// Integer is an integer variable with x ≥ 0. Branch-and-bound relaxes it
	// to the [0,1] box, the same way as Binary.
	Integer
	// Binary is a 0/1 variable.
	Binary
)

// String implements fmt.Stringer.
func (k VarKind) String() string {
	switch k {
	case NonNegative:
		return ">=0"
	case NonPositive:
		return "<=0"
	case Free:
		return "free"
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return fmt.Sprintf("VarKind(%d)", int(k))
	}
}

// IsIntegral reports whether the kind carries an integrality requirement.
func (k VarKind) IsIntegral() bool { return k == Integer || k == Binary }

// Model is a linear program with optional integrality tags.
//
// Invariants (checked by Validate):
//   - len(C) = n > 0; every row of A has length n.
//   - len(A) = len(Relations) = len(B) = m.
//   - Kinds is nil (all NonNegative) or has length n.
//   - Names/RowNames are nil or have length n/m.
type Model struct {
	Sense     Sense
	C         []float64   // objective coefficients, len n
	A         [][]float64 // constraint matrix, m×n
	Relations []Relation  // per-row relation, len m
	B         []float64   // right-hand side, len m
	Kinds     []VarKind   // per-variable tag, len n or nil
	Names     []string    // optional variable names
	RowNames  []string    // optional constraint names
}

// NumVars returns n, the number of decision variables.
func (m Model) NumVars() int { return len(m.C) }

// NumRows returns m, the number of constraint rows.
func (m Model) NumRows() int { return len(m.A) }

// Kind returns the tag of variable j, defaulting to NonNegative.
func (m Model) Kind(j int) VarKind {
	if j < 0 || j >= len(m.Kinds) {
		return NonNegative
	}

	return m.Kinds[j]
}

// VarName returns the display name of variable j (x1, x2, … by default).
func (m Model) VarName(j int) string {
	if j >= 0 && j < len(m.Names) && m.Names[j] != "" {
		return m.Names[j]
	}

	return fmt.Sprintf("x%d", j+1)
}

// RowName returns the display name of row i (c1, c2, … by default).
func (m Model) RowName(i int) string {
	if i >= 0 && i < len(m.RowNames) && m.RowNames[i] != "" {
		return m.RowNames[i]
	}

	return fmt.Sprintf("c%d", i+1)
}

// IntegerVars returns the indices of variables tagged Integer or Binary, ascending.
func (m Model) IntegerVars() []int {
	var out []int
	for j := range m.C {
		if m.Kind(j).IsIntegral() {
			out = append(out, j)
		}
	}

	return out
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := Model{
		Sense:     m.Sense,
		C:         append([]float64(nil), m.C...),
		A:         make([][]float64, len(m.A)),
		Relations: append([]Relation(nil), m.Relations...),
		B:         append([]float64(nil), m.B...),
		Kinds:     append([]VarKind(nil), m.Kinds...),
		Names:     append([]string(nil), m.Names...),
		RowNames:  append([]string(nil), m.RowNames...),
	}
	for i, row := range m.A {
		out.A[i] = append([]float64(nil), row...)
	}

	return out
}

// Row is one constraint to append to a Model.
type Row struct {
	Coeffs   []float64
	Relation Relation
	RHS      float64
	Name     string
}

// WithRows returns a copy of m with rows appended after the existing ones.
// Existing row storage is shared, never written; the receiver is unchanged.
func (m Model) WithRows(rows ...Row) Model {
	out := m
	k := len(m.A) + len(rows)
	out.A = make([][]float64, len(m.A), k)
	copy(out.A, m.A)
	out.Relations = make([]Relation, len(m.Relations), k)
	copy(out.Relations, m.Relations)
	out.B = make([]float64, len(m.B), k)
	copy(out.B, m.B)
	named := len(m.RowNames) > 0
	for _, r := range rows {
		named = named || r.Name != ""
	}
	out.RowNames = nil
	if named {
		out.RowNames = make([]string, len(m.A), k)
		copy(out.RowNames, m.RowNames)
	}
	for _, r := range rows {
		out.A = append(out.A, r.Coeffs)
		out.Relations = append(out.Relations, r.Relation)
		out.B = append(out.B, r.RHS)
		if out.RowNames != nil {
			out.RowNames = append(out.RowNames, r.Name)
		}
	}

	return out
}

// Relaxed returns the continuous relaxation of m: Integer and Binary tags
// become NonNegative. Rows are shared with m.
func (m Model) Relaxed() Model {
	out := m
	if m.Kinds == nil {
		return out
	}
	out.Kinds = make([]VarKind, len(m.Kinds))
	for j, k := range m.Kinds {
		if k.IsIntegral() {
			k = NonNegative
		}
		out.Kinds[j] = k
	}

	return out
}
