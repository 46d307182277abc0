package bnb

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmip/model"
)

// TestRelaxation checks that every variable is boxed to [0,1].
func TestRelaxation(t *testing.T) {
	m := model.Model{
		C:         []float64{1, 2, 3},
		A:         [][]float64{{1, 1, 1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{2},
		Kinds:     []model.VarKind{model.Integer, model.Free, model.Binary},
		Names:     []string{"a", "b", "c"},
	}
	r := relaxation(m)

	require.Equal(t, 4, r.NumRows())
	require.Equal(t, []float64{1, 0, 0}, r.A[1])
	require.Equal(t, []float64{0, 1, 0}, r.A[2])
	require.Equal(t, []float64{0, 0, 1}, r.A[3])
	require.Equal(t, []float64{2, 1, 1, 1}, r.B)
	require.Empty(t, r.IntegerVars())
	for j := 0; j < 3; j++ {
		require.Equal(t, model.NonNegative, r.Kind(j))
	}
	require.Equal(t, []string{"c1", "ub_a", "ub_b", "ub_c"},
		[]string{r.RowName(0), r.RowName(1), r.RowName(2), r.RowName(3)})
	require.Equal(t, 1, m.NumRows(), "source untouched")
	require.Equal(t, model.Free, m.Kind(1), "source untouched")
}

// TestSearch_RoundedIncumbentSatisfiesRelaxation checks mixed continuous and
// binary models: the incumbent is integral in every coordinate and, rounded,
// meets every row of the relaxation the search ran on.
func TestSearch_RoundedIncumbentSatisfiesRelaxation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		n := 2 + rng.Intn(3)
		m := model.Model{C: make([]float64, n), Kinds: make([]model.VarKind, n)}
		for j := range m.C {
			m.C[j] = float64(1 + rng.Intn(9))
			if rng.Intn(2) == 0 {
				m.Kinds[j] = model.Binary
			}
		}
		for i := 0; i < 1+rng.Intn(2); i++ {
			row := make([]float64, n)
			for j := range row {
				row[j] = float64(1 + rng.Intn(5))
			}
			m.A = append(m.A, row)
			m.Relations = append(m.Relations, model.LessEq)
			m.B = append(m.B, float64(2+rng.Intn(8))+0.5)
		}

		res, err := Solve(context.Background(), m)
		require.NoError(t, err)
		if !res.HasSolution() {
			continue
		}
		rounded := make([]float64, n)
		for j, v := range res.X {
			require.InDeltaf(t, math.Round(v), v, Tolerance, "trial %d x%d", trial, j+1)
			rounded[j] = math.Round(v)
		}
		require.Truef(t, relaxation(m).Satisfies(rounded, Tolerance), "trial %d x=%v", trial, rounded)
	}
}

// TestNode_ChildrenDoNotShareBounds checks sibling isolation.
func TestNode_ChildrenDoNotShareBounds(t *testing.T) {
	root := node{}
	l := root.child(Bound{Var: 0, Op: model.LessEq, Value: 0}, leftLabel)
	r := root.child(Bound{Var: 0, Op: model.GreaterEq, Value: 1}, rightLabel)
	ll := l.child(Bound{Var: 1, Op: model.LessEq, Value: 0}, leftLabel)
	lr := l.child(Bound{Var: 1, Op: model.GreaterEq, Value: 1}, rightLabel)

	require.Equal(t, "/L/L", ll.path)
	require.Equal(t, "/L/R", lr.path)
	require.Equal(t, 2, lr.depth)
	require.Equal(t, model.LessEq, ll.bounds[1].Op)
	require.Equal(t, model.GreaterEq, lr.bounds[1].Op)
	require.Len(t, l.bounds, 1)

	b, ok := r.last()
	require.True(t, ok)
	require.Equal(t, "x1>=1", b.String())
	_, ok = root.last()
	require.False(t, ok)
}

// TestNode_Constrain checks the bound rows appended after the base rows.
func TestNode_Constrain(t *testing.T) {
	base := model.Model{
		C:         []float64{1, 1},
		A:         [][]float64{{1, 1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{1},
	}
	nd := node{}.child(Bound{Var: 1, Op: model.GreaterEq, Value: 1}, rightLabel)
	cm := nd.constrain(base)

	require.Equal(t, 2, cm.NumRows())
	require.Equal(t, []float64{0, 1}, cm.A[1])
	require.Equal(t, model.GreaterEq, cm.Relations[1])
	require.Equal(t, 1, base.NumRows())
	require.Equal(t, base.NumRows(), node{}.constrain(base).NumRows())
}

// TestOptions_Limits checks clamping of the configured limits.
func TestOptions_Limits(t *testing.T) {
	o := DefaultOptions()
	require.Equal(t, HardNodeLimit, o.nodeLimit())
	require.Equal(t, DefaultMaxQueue, o.queueLimit())
	require.Equal(t, DefaultTimeLimit, o.timeLimit())

	WithMaxIterations(3)(&o)
	WithTimeLimit(time.Hour)(&o)
	require.Equal(t, 3, o.nodeLimit())
	require.Equal(t, DefaultTimeLimit, o.timeLimit())

	WithMaxIterations(0)(&o)
	WithTimeLimit(time.Second)(&o)
	require.Equal(t, HardNodeLimit, o.nodeLimit())
	require.Equal(t, time.Second, o.timeLimit())
	require.NoError(t, o.err)

	WithMaxQueue(0)(&o)
	require.ErrorIs(t, o.err, ErrOptionViolation)
	require.EqualError(t, o.err, "MaxQueue must be positive (0): bnb: invalid option supplied")
}
