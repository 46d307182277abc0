package bnb

import (
	"fmt"

	"github.com/katalvlaran/lvmip/model"
	"github.com/katalvlaran/lvmip/simplex"
)

// Path labels of the two children of a branched node.
const (
	leftLabel  = "/L"
	rightLabel = "/R"
)

// Bound is one branching restriction x[Var] Op Value, Op being LessEq or GreaterEq.
type Bound struct {
	Var   int
	Op    model.Relation
	Value float64
}

// String renders the bound as "x3<=1".
func (b Bound) String() string {
	return fmt.Sprintf("x%d%s%g", b.Var+1, b.Op, b.Value)
}

// row returns the bound as a constraint over n variables.
func (b Bound) row(n int) model.Row {
	coeffs := make([]float64, n)
	coeffs[b.Var] = 1

	return model.Row{Coeffs: coeffs, Relation: b.Op, RHS: b.Value, Name: b.String()}
}

// node is one pending subproblem: the shared root relaxation plus bounds.
// A node is created by its parent, dequeued once and never mutated.
type node struct {
	bounds []Bound
	depth  int
	path   string
}

// last returns the most recently added bound.
func (nd node) last() (Bound, bool) {
	if len(nd.bounds) == 0 {
		return Bound{}, false
	}

	return nd.bounds[len(nd.bounds)-1], true
}

// method picks the simplex driver of nd: Dual after a ≥ bound, whose row
// leaves the parent optimum primal infeasible, Auto otherwise.
func (nd node) method() simplex.Method {
	if b, ok := nd.last(); ok && b.Op == model.GreaterEq {
		return simplex.Dual
	}

	return simplex.Auto
}

// child returns nd extended by b. The bound slice is copied so siblings never
// share backing storage.
func (nd node) child(b Bound, label string) node {
	bounds := make([]Bound, len(nd.bounds), len(nd.bounds)+1)
	copy(bounds, nd.bounds)

	return node{
		bounds: append(bounds, b),
		depth:  nd.depth + 1,
		path:   nd.path + label,
	}
}

// constrain returns base with nd's bounds appended as rows.
func (nd node) constrain(base model.Model) model.Model {
	if len(nd.bounds) == 0 {
		return base
	}
	n := base.NumVars()
	rows := make([]model.Row, len(nd.bounds))
	for i, b := range nd.bounds {
		rows[i] = b.row(n)
	}

	return base.WithRows(rows...)
}

// relaxation returns the root relaxation of m: every variable is boxed to
// 0 ≤ x_j ≤ 1, the lower bound as the sign restriction (tags are dropped) and
// the upper bound as an appended ub_<name> row. Original rows keep their
// positions.
func relaxation(m model.Model) model.Model {
	rows := make([]model.Row, m.NumVars())
	for j := range rows {
		rows[j] = Bound{Var: j, Op: model.LessEq, Value: 1}.row(m.NumVars())
		rows[j].Name = "ub_" + m.VarName(j)
	}
	r := m.WithRows(rows...)
	r.Kinds = nil

	return r
}
