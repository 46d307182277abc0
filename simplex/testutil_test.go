// Package simplex_test holds the shared fixtures of the simplex tests.
// Fixtures are tiny, hand-checked models; each comment states the optimum.
package simplex_test

import (
	"math/rand"

	"github.com/katalvlaran/lvmip/model"
)

const (
	// tol is the comparison tolerance for objective values and coordinates.
	tol = 1e-9

	// seedDet keeps random model generation reproducible.
	seedDet = int64(42)
)

// scenarioA: max 3x1+2x2; x1+x2≤4; x1≤2; x2≤3 → z=10 at (2,2), duals (2,1,0).
func scenarioA() model.Model {
	return model.Model{
		Sense:     model.Maximize,
		C:         []float64{3, 2},
		A:         [][]float64{{1, 1}, {1, 0}, {0, 1}},
		Relations: []model.Relation{model.LessEq, model.LessEq, model.LessEq},
		B:         []float64{4, 2, 3},
	}
}

// diet: min 2x1+3x2; x1+x2≥4; x1+3x2≥6 → z=9 at (3,1), duals (1.5,0.5).
func diet() model.Model {
	return model.Model{
		Sense:     model.Minimize,
		C:         []float64{2, 3},
		A:         [][]float64{{1, 1}, {1, 3}},
		Relations: []model.Relation{model.GreaterEq, model.GreaterEq},
		B:         []float64{4, 6},
	}
}

// unbounded: max x1+x2; x1−x2≤1 → Unbounded.
func unbounded() model.Model {
	return model.Model{
		Sense:     model.Maximize,
		C:         []float64{1, 1},
		A:         [][]float64{{1, -1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{1},
	}
}

// emptyRegion: max x; x≤−1; x≥0 (sign tag) → Infeasible.
func emptyRegion() model.Model {
	return model.Model{
		Sense:     model.Maximize,
		C:         []float64{1},
		A:         [][]float64{{1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{-1},
	}
}

// randomPacking returns max c·x; A x ≤ b with strictly positive data, which
// is always feasible at the origin and bounded.
func randomPacking(rng *rand.Rand, m, n int) model.Model {
	mod := model.Model{Sense: model.Maximize, C: make([]float64, n)}
	for j := range mod.C {
		mod.C[j] = 1 + float64(rng.Intn(9))
	}
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j := range row {
			row[j] = 0.5 + float64(rng.Intn(6))/2
		}
		mod.A = append(mod.A, row)
		mod.Relations = append(mod.Relations, model.LessEq)
		mod.B = append(mod.B, float64(5+rng.Intn(20)))
	}

	return mod
}

// randomMixed returns a model with arbitrary relations and mixed-sign RHS.
// It is only meant for conversion properties, not for solving.
func randomMixed(rng *rand.Rand, m, n int) model.Model {
	mod := model.Model{Sense: model.Sense(rng.Intn(2)), C: make([]float64, n), Kinds: make([]model.VarKind, n)}
	for j := range mod.C {
		mod.C[j] = float64(rng.Intn(11) - 5)
		mod.Kinds[j] = model.VarKind(rng.Intn(5))
	}
	for i := 0; i < m; i++ {
		row := make([]float64, n)
		for j := range row {
			row[j] = float64(rng.Intn(11) - 5)
		}
		mod.A = append(mod.A, row)
		mod.Relations = append(mod.Relations, model.Relation(rng.Intn(3)))
		mod.B = append(mod.B, float64(rng.Intn(21)-10))
	}

	return mod
}
