package bnb_test

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmip/bnb"
	"github.com/katalvlaran/lvmip/model"
	"github.com/katalvlaran/lvmip/simplex"
	"github.com/katalvlaran/lvmip/trace"
)

const tol = 1e-9

// knapsack: max 3x1+2x2+2x3; 2x1+2x2+2x3 ≤ 3; binary.
// Root relaxation z=4 at (1, .5, 0); optimum z=3 at (1,0,0) after 9 nodes.
func knapsack() model.Model {
	return model.Model{
		Sense:     model.Maximize,
		C:         []float64{3, 2, 2},
		A:         [][]float64{{2, 2, 2}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{3},
		Kinds:     []model.VarKind{model.Binary, model.Binary, model.Binary},
	}
}

// cover: min x1+x2; x1+x2 ≥ 1.5; binary → z=2 at (1,1) after 5 nodes.
func cover() model.Model {
	return model.Model{
		Sense:     model.Minimize,
		C:         []float64{1, 1},
		A:         [][]float64{{1, 1}},
		Relations: []model.Relation{model.GreaterEq},
		B:         []float64{1.5},
		Kinds:     []model.VarKind{model.Binary, model.Integer},
	}
}

func mustEngine(t *testing.T, opts ...bnb.Option) *bnb.Engine {
	t.Helper()
	eng, err := bnb.New(opts...)
	require.NoError(t, err)

	return eng
}

// TestSolve_ScenarioB checks max x1+x2; x1+x2 ≤ 1 over binaries.
// The relaxation vertices are already integral, so no node is dequeued.
func TestSolve_ScenarioB(t *testing.T) {
	m := model.Model{
		C:         []float64{1, 1},
		A:         [][]float64{{1, 1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{1},
		Kinds:     []model.VarKind{model.Binary, model.Binary},
	}
	res, err := bnb.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, model.Optimal, res.Status)
	require.InDelta(t, 1.0, res.Objective, tol)
	require.InDelta(t, 1.0, res.X[0]+res.X[1], tol)
	require.True(t, m.IsIntegral(res.X, bnb.Tolerance))
}

// TestSolve_ScenarioC_IntegralRoot checks the root shortcut.
func TestSolve_ScenarioC_IntegralRoot(t *testing.T) {
	// max 2x1 + 3x2; x1 + x2 ≤ 2.5; x1 ≤ 2; x1 continuous, x2 binary.
	// Every variable is boxed to [0,1], so the root lands on (1, 1), z=5.
	m := model.Model{
		C:         []float64{2, 3},
		A:         [][]float64{{1, 1}, {1, 0}},
		Relations: []model.Relation{model.LessEq, model.LessEq},
		B:         []float64{2.5, 2},
		Kinds:     []model.VarKind{model.NonNegative, model.Binary},
	}
	buf := trace.NewBuffer()
	res, err := bnb.Solve(context.Background(), m, bnb.WithVerbose(buf))
	require.NoError(t, err)

	require.Equal(t, model.Optimal, res.Status)
	require.Zero(t, res.Nodes)
	require.InDeltaSlice(t, []float64{1, 1}, res.X, tol)
	require.InDelta(t, 5.0, res.Objective, tol)
	require.InDelta(t, res.Objective, res.RootObjective, tol)
	require.InDeltaSlice(t, []float64{0, 0}, res.Duals, tol, "bound rows are not reported")
	require.Zero(t, buf.Count(trace.KindDequeued))
	require.Equal(t, 1, buf.Count(trace.KindRoot))
}

// TestSolve_ContinuousVariablesAreBoxed checks that untagged variables get
// the same [0,1] box and integrality test as binaries.
func TestSolve_ContinuousVariablesAreBoxed(t *testing.T) {
	// max x1 + x2; x1 + x2 ≤ 3; x1 continuous, x2 binary → (1, 1), z=2.
	m := model.Model{
		C:         []float64{1, 1},
		A:         [][]float64{{1, 1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{3},
		Kinds:     []model.VarKind{model.NonNegative, model.Binary},
	}
	res, err := bnb.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, model.Optimal, res.Status)
	require.InDelta(t, 2.0, res.Objective, tol)
	require.InDeltaSlice(t, []float64{1, 1}, res.X, tol)
	require.Zero(t, res.Nodes)

	// max x1 + x2; 2x1 + x2 ≤ 2; x1 continuous, x2 binary.
	// Root (0.5, 1), z=1.5: the continuous x1 is the branching variable.
	m = model.Model{
		C:         []float64{1, 1},
		A:         [][]float64{{2, 1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{2},
		Kinds:     []model.VarKind{model.NonNegative, model.Binary},
	}
	buf := trace.NewBuffer()
	res, err = bnb.Solve(context.Background(), m, bnb.WithVerbose(buf))
	require.NoError(t, err)
	require.Equal(t, model.Optimal, res.Status)
	require.InDelta(t, 1.5, res.RootObjective, tol)
	require.InDelta(t, 1.0, res.Objective, tol)
	require.InDeltaSlice(t, []float64{0, 1}, res.X, tol)
	require.Equal(t, 3, res.Nodes)

	var branched []trace.Event
	for _, e := range buf.Events() {
		if e.Kind == trace.KindBranched {
			branched = append(branched, e)
		}
	}
	require.Len(t, branched, 1)
	require.Equal(t, 0, branched[0].Var)
	require.Equal(t, "x1", branched[0].VarName())
	require.InDelta(t, 0.5, branched[0].Value, tol)
}

// TestSolve_Knapsack_Branches checks the full search and its node outcomes.
func TestSolve_Knapsack_Branches(t *testing.T) {
	m := knapsack()
	buf := trace.NewBuffer()
	res, err := mustEngine(t, bnb.WithVerbose(buf)).Solve(context.Background(), m)
	require.NoError(t, err)

	require.Equal(t, model.Optimal, res.Status)
	require.Equal(t, model.KindNone, res.Kind)
	require.InDelta(t, 3.0, res.Objective, tol)
	require.InDeltaSlice(t, []float64{1, 0, 0}, res.X, tol)
	require.InDelta(t, 4.0, res.RootObjective, tol)
	require.Equal(t, 9, res.Nodes)
	require.Len(t, res.Duals, 1)
	require.Empty(t, res.Warnings)

	require.Equal(t, 9, buf.Count(trace.KindDequeued))
	require.Equal(t, 4, buf.Count(trace.KindBranched))
	require.Equal(t, 1, buf.Count(trace.KindIncumbent))
	require.Equal(t, 2, buf.Count(trace.KindPrunedBound))
	require.Equal(t, 2, buf.Count(trace.KindPrunedInfeasible))
	require.Zero(t, buf.Count(trace.KindAbort))

	var paths []string
	for _, e := range buf.Events() {
		require.Equal(t, res.RunID, e.Run)
		if e.Kind == trace.KindDequeued {
			paths = append(paths, e.Path)
		}
	}
	require.Equal(t, []string{"", "/L", "/R", "/L/L", "/L/R", "/R/L", "/R/R", "/L/R/L", "/L/R/R"}, paths)

	// Right children (last bound ≥) run the dual driver, the rest run auto.
	methods := map[string]string{}
	for _, e := range buf.Events() {
		if e.Kind == trace.KindDequeued {
			methods[e.Path] = e.Message
		}
	}
	require.Equal(t, map[string]string{
		"": "auto", "/L": "auto", "/R": "dual",
		"/L/L": "auto", "/L/R": "dual", "/R/L": "auto", "/R/R": "dual",
		"/L/R/L": "auto", "/L/R/R": "dual",
	}, methods)

	// The root branches on x2 = 0.5; the trace names it like the bound rows.
	for _, e := range buf.Events() {
		if e.Kind == trace.KindBranched {
			require.Equal(t, 1, e.Node)
			require.Equal(t, "x2", e.VarName())
			require.InDelta(t, 0.5, e.Value, tol)
			break
		}
	}
	require.Contains(t, strings.Join(buf.Lines(), "\n"), "branched node=1 depth=0 var=x2 value=0.5")
}

// TestSolve_Minimize checks a covering model solved through dual nodes.
func TestSolve_Minimize(t *testing.T) {
	res, err := bnb.Solve(context.Background(), cover())
	require.NoError(t, err)
	require.Equal(t, model.Optimal, res.Status)
	require.InDelta(t, 2.0, res.Objective, tol)
	require.InDeltaSlice(t, []float64{1, 1}, res.X, tol)
	require.InDelta(t, 1.5, res.RootObjective, tol)
	require.Equal(t, 5, res.Nodes)
}

// TestSolve_ScenarioD_Distinguishable separates an empty region from a
// truncated search.
func TestSolve_ScenarioD_Distinguishable(t *testing.T) {
	empty := model.Model{
		C:         []float64{1},
		A:         [][]float64{{1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{-1},
		Kinds:     []model.VarKind{model.Binary},
	}
	infeasible, err := bnb.Solve(context.Background(), empty)
	require.NoError(t, err)
	require.Equal(t, model.Infeasible, infeasible.Status)
	require.Equal(t, model.KindNone, infeasible.Kind)
	require.Zero(t, infeasible.Nodes)

	// Queue guard: after node 2 the queue holds 3 > 2 nodes, no incumbent yet.
	cut, err := bnb.Solve(context.Background(), knapsack(), bnb.WithMaxQueue(2))
	require.NoError(t, err)
	require.Equal(t, model.NotSolved, cut.Status)
	require.Equal(t, model.KindSearchExhausted, cut.Kind)
	require.Equal(t, 2, cut.Nodes)
	require.Nil(t, cut.X)

	require.NotEqual(t, infeasible.Status, cut.Status)
	require.NotEqual(t, infeasible.Kind, cut.Kind)
}

// TestSolve_NodeLimit checks truncation with and without an incumbent.
func TestSolve_NodeLimit(t *testing.T) {
	res, err := bnb.Solve(context.Background(), knapsack(), bnb.WithMaxIterations(1))
	require.NoError(t, err)
	require.Equal(t, model.NotSolved, res.Status)
	require.Equal(t, model.KindSearchExhausted, res.Kind)
	require.Equal(t, 1, res.Nodes)

	// Node 4 (/L/L) finds the incumbent.
	buf := trace.NewBuffer()
	res, err = bnb.Solve(context.Background(), knapsack(), bnb.WithMaxIterations(4), bnb.WithVerbose(buf))
	require.NoError(t, err)
	require.Equal(t, model.Feasible, res.Status)
	require.Equal(t, model.KindSearchExhausted, res.Kind)
	require.Equal(t, 4, res.Nodes)
	require.InDeltaSlice(t, []float64{1, 0, 0}, res.X, tol)
	require.Equal(t, 1, buf.Count(trace.KindAbort))

	// Configured caps above the hard limit are clamped.
	eng := mustEngine(t, bnb.WithMaxIterations(1000))
	res, err = eng.Solve(context.Background(), knapsack())
	require.NoError(t, err)
	require.LessOrEqual(t, res.Nodes, bnb.HardNodeLimit)
}

// TestSolve_TimeLimit checks that an elapsed deadline truncates the search
// before the first node.
func TestSolve_TimeLimit(t *testing.T) {
	buf := trace.NewBuffer()
	res, err := bnb.Solve(context.Background(), knapsack(),
		bnb.WithTimeLimit(time.Nanosecond), bnb.WithVerbose(buf))
	require.NoError(t, err)
	require.Equal(t, model.NotSolved, res.Status)
	require.Equal(t, model.KindSearchExhausted, res.Kind)
	require.Zero(t, res.Nodes)
	require.InDelta(t, 4.0, res.RootObjective, tol)

	require.Equal(t, 1, buf.Count(trace.KindAbort))
	for _, e := range buf.Events() {
		if e.Kind == trace.KindAbort {
			require.Equal(t, "time limit reached", e.Message)
		}
	}
}

// TestSolve_Canceled checks that a done context truncates the search.
func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := bnb.Solve(ctx, knapsack())
	require.NoError(t, err)
	require.Equal(t, model.NotSolved, res.Status)
	require.Equal(t, model.KindSearchExhausted, res.Kind)
	require.Zero(t, res.Nodes)
	require.InDelta(t, 4.0, res.RootObjective, tol)
}

// TestSolve_Errors checks structural failures and option violations.
func TestSolve_Errors(t *testing.T) {
	res, err := bnb.Solve(context.Background(), model.Model{C: []float64{1}, A: [][]float64{{1, 1}}})
	require.ErrorIs(t, err, model.ErrMalformedModel)
	require.Equal(t, model.NotSolved, res.Status)
	require.Equal(t, model.KindMalformedModel, res.Kind)
	require.NotEmpty(t, res.RunID)

	eq := knapsack()
	eq.Relations[0] = model.Equal
	res, err = bnb.Solve(context.Background(), eq)
	require.ErrorIs(t, err, simplex.ErrEqualityRow)
	require.Equal(t, model.KindUnsupported, res.Kind)
	require.Equal(t, model.KindUnsupported, model.KindOf(err))

	for name, opt := range map[string]bnb.Option{
		"iterations": bnb.WithMaxIterations(-1),
		"queue":      bnb.WithMaxQueue(0),
		"time":       bnb.WithTimeLimit(-1),
	} {
		_, err = bnb.New(opt)
		assert.ErrorIs(t, err, bnb.ErrOptionViolation, name)
	}
}

// TestSolve_RootStatusPassesThrough checks a non-optimal root. The [0,1]
// box keeps every relaxation bounded, so only Infeasible can come back.
func TestSolve_RootStatusPassesThrough(t *testing.T) {
	// min x1 + x2; x1 + x2 ≥ 3; binary → the box caps the sum at 2.
	m := model.Model{
		Sense:     model.Minimize,
		C:         []float64{1, 1},
		A:         [][]float64{{1, 1}},
		Relations: []model.Relation{model.GreaterEq},
		B:         []float64{3},
		Kinds:     []model.VarKind{model.Binary, model.Binary},
	}
	buf := trace.NewBuffer()
	res, err := bnb.Solve(context.Background(), m, bnb.WithVerbose(buf))
	require.NoError(t, err)
	require.Equal(t, model.Infeasible, res.Status)
	require.Equal(t, model.KindNone, res.Kind)
	require.Zero(t, res.Nodes)
	require.Zero(t, buf.Count(trace.KindDequeued))

	// An unbounded direction in the original model is cut by the box.
	unbounded := model.Model{
		C:         []float64{1, 1},
		A:         [][]float64{{1, -1}},
		Relations: []model.Relation{model.LessEq},
		B:         []float64{1},
		Kinds:     []model.VarKind{model.Binary, model.NonNegative},
	}
	res, err = bnb.Solve(context.Background(), unbounded)
	require.NoError(t, err)
	require.Equal(t, model.Optimal, res.Status)
	require.InDelta(t, 2.0, res.Objective, tol)
	require.InDeltaSlice(t, []float64{1, 1}, res.X, tol)
}

// TestSolve_Invariants checks the incumbent against the root bound and the
// relaxed rows on random binary models.
func TestSolve_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		m := randomBinary(rng, 1+rng.Intn(2), 2+rng.Intn(2))
		res, err := bnb.Solve(context.Background(), m)
		require.NoError(t, err)
		if !res.HasSolution() {
			continue
		}
		assert.LessOrEqualf(t, res.Objective, res.RootObjective+bnb.Tolerance, "trial %d", trial)

		rounded := make([]float64, len(res.X))
		for j, v := range res.X {
			rounded[j] = math.Round(v)
			assert.LessOrEqual(t, rounded[j], 1.0)
		}
		assert.Truef(t, m.Relaxed().Satisfies(rounded, 1e-6), "trial %d x=%v", trial, rounded)
		assert.True(t, m.IsIntegral(res.X, bnb.Tolerance))
	}
}

// randomBinary returns a packing model over binaries; the origin is always feasible.
func randomBinary(rng *rand.Rand, rows, n int) model.Model {
	m := model.Model{C: make([]float64, n), Kinds: make([]model.VarKind, n)}
	for j := range m.C {
		m.C[j] = float64(1 + rng.Intn(9))
		m.Kinds[j] = model.Binary
	}
	for i := 0; i < rows; i++ {
		row := make([]float64, n)
		for j := range row {
			row[j] = float64(1 + rng.Intn(5))
		}
		m.A = append(m.A, row)
		m.Relations = append(m.Relations, model.LessEq)
		m.B = append(m.B, float64(2+rng.Intn(6))+0.5)
	}

	return m
}

// TestEngine_ConcurrentCalls checks that one Engine serves parallel solves.
func TestEngine_ConcurrentCalls(t *testing.T) {
	eng := mustEngine(t)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		runs = map[string]bool{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := eng.Solve(context.Background(), knapsack())
			assert.NoError(t, err)
			assert.Equal(t, model.Optimal, res.Status)
			assert.Equal(t, 9, res.Nodes)
			mu.Lock()
			runs[res.RunID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, runs, 8)
}

// TestSolve_LogPath checks trace persistence of a search.
func TestSolve_LogPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bnb.log")
	res, err := bnb.Solve(context.Background(), knapsack(), bnb.WithLogPath(path))
	require.NoError(t, err)
	require.Equal(t, path, res.LogPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Equal(t, 9, strings.Count(text, " dequeued "))
	require.Contains(t, text, "path=/L/R/R")
	require.True(t, strings.HasSuffix(strings.TrimSpace(text), "obj=3"))
}
