// Package simplex - primal and dual drivers.
//
// Both drivers share one pivot loop (pivoter) bounded by Options.pivotLimit.
//
// Primal:
//
//	loop { optimal → stop; entering = none → stop; unbounded(col) → Unbounded;
//	       leaving = ratio test; pivot }
//
// Dual:
//
//	while some RHS < −Eps { leaving = most negative RHS; entering = dual ratio;
//	                        none → Infeasible; pivot }
//	then Primal.
//
// Exhausting the pivot cap yields NotSolved with model.KindIterationLimit.
package simplex

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/lvmip/model"
	"github.com/katalvlaran/lvmip/trace"
)

// pivoter drives a tableau under a pivot budget and reports every pivot.
type pivoter struct {
	t     *Tableau
	sc    trace.Scope
	iter  int
	limit int
}

// outcome is the verdict of a pivot loop.
type outcome struct {
	status model.Status
	kind   model.ErrorKind
	err    error
}

func (p *pivoter) step(row, col int) error {
	if err := p.t.Pivot(row, col); err != nil {
		return err
	}
	p.iter++
	p.sc.Emit(trace.Event{
		Kind:      trace.KindPivot,
		Iteration: p.iter,
		Row:       row,
		Col:       col,
		Objective: p.t.Objective(),
	})

	return nil
}

// primal runs primal pivots from the current (assumed feasible) basis.
func (p *pivoter) primal() outcome {
	for {
		if p.t.IsOptimal() {
			return outcome{status: model.Optimal}
		}
		if p.iter >= p.limit {
			return outcome{status: model.NotSolved, kind: model.KindIterationLimit}
		}
		col := p.t.EnteringColumn()
		if col < 0 {
			return outcome{status: model.Optimal}
		}
		if p.t.IsUnbounded(col) {
			return outcome{status: model.Unbounded}
		}
		row := p.t.LeavingRow(col)
		if row < 0 {
			return outcome{status: model.Unbounded}
		}
		if err := p.step(row, col); err != nil {
			return outcome{status: model.NotSolved, kind: model.KindOf(err), err: err}
		}
	}
}

// dual restores primal feasibility with dual pivots, then finishes primal.
func (p *pivoter) dual() outcome {
	for {
		row := p.t.DualLeavingRow()
		if row < 0 {
			break
		}
		if p.iter >= p.limit {
			return outcome{status: model.NotSolved, kind: model.KindIterationLimit}
		}
		col := p.t.DualEnteringColumn(row)
		if col < 0 {
			return outcome{status: model.Infeasible}
		}
		if err := p.step(row, col); err != nil {
			return outcome{status: model.NotSolved, kind: model.KindOf(err), err: err}
		}
	}

	return p.primal()
}

// SolvePrimal solves m with the primal simplex from the all-slack basis.
// A basis with a negative RHS is reported Infeasible without a Phase-I test.
func SolvePrimal(m model.Model, opts ...Option) (model.Result, error) {
	return Execute(m, Primal, gatherOptions(opts))
}

// SolveDual solves m with dual pivots until the RHS is non-negative, then
// primal pivots until optimal.
func SolveDual(m model.Model, opts ...Option) (model.Result, error) {
	return Execute(m, Dual, gatherOptions(opts))
}

// Solve picks Primal when the starting basis is primal feasible, Dual otherwise.
func Solve(m model.Model, opts ...Option) (model.Result, error) {
	return Execute(m, Auto, gatherOptions(opts))
}

// Execute runs method on m with a resolved configuration.
//
// Verdicts (Optimal, Unbounded, Infeasible, NotSolved on the pivot cap) come
// back with a nil error. Structural failures come back as an error carrying a
// model.ErrorKind, together with a NotSolved result of the same kind.
func Execute(m model.Model, method Method, cfg Options) (model.Result, error) {
	var (
		sc, buf, owned = beginRun(cfg)
		res            = model.Result{RunID: sc.Run()}
		out            outcome
	)
	if owned {
		sc.Emit(trace.Event{Kind: trace.KindStart, Message: method.String()})
	}

	t, err := prepare(m, method, cfg.PivotRule)
	if err != nil {
		out = outcome{status: model.NotSolved, kind: model.KindOf(err), err: err}
	} else {
		p := &pivoter{t: t, sc: sc, limit: cfg.pivotLimit()}
		out = run(p, method)
		res.Iterations = p.iter
		if out.status == model.Optimal {
			fill(&res, t)
		}
	}
	res.Status, res.Kind = out.status, out.kind
	sc.Emit(trace.Event{Kind: trace.KindSolved, Status: res.Status.String(), Objective: res.Objective})

	if owned {
		sc.Emit(trace.Event{Kind: trace.KindDone, Status: res.Status.String(), Objective: res.Objective})
		if path, warn := trace.Persist(buf, cfg.LogPath, cfg.Logger); warn != "" {
			res.Warnings = append(res.Warnings, warn)
		} else {
			res.LogPath = path
		}
	}

	return res, out.err
}

// prepare validates the method, converts m and builds the starting tableau.
func prepare(m model.Model, method Method, rule PivotRule) (*Tableau, error) {
	if method < Auto || method > Dual {
		return nil, model.WithKind(model.KindMalformedModel,
			errors.Wrapf(ErrUnknownMethod, "method %d", int(method)))
	}
	cf, err := Convert(m)
	if err != nil {
		return nil, err
	}

	return NewTableau(cf, rule)
}

// run dispatches the pivot loop for method.
func run(p *pivoter, method Method) outcome {
	switch method {
	case Primal:
		if !p.t.IsPrimalFeasible() {
			return outcome{status: model.Infeasible}
		}
		return p.primal()
	case Dual:
		return p.dual()
	default:
		if p.t.IsPrimalFeasible() {
			return p.primal()
		}
		return p.dual()
	}
}

// fill copies the optimal solution, basis, reduced costs and duals into res.
func fill(res *model.Result, t *Tableau) {
	z, obj := t.BasicSolution()
	res.X = t.cf.Recover(z)
	res.Objective = obj
	res.Basis = t.Basis()
	res.ReducedCosts = t.ReducedCosts()
	res.Duals = t.DualValues()
}

// beginRun resolves the trace scope of a solve. A scope inherited from an
// enclosing run is used as is; otherwise a fresh run owns its sinks and the
// optional text buffer backing LogPath.
func beginRun(cfg Options) (trace.Scope, *trace.Buffer, bool) {
	if cfg.Scope.Run() != "" {
		return cfg.Scope, nil, false
	}
	var (
		buf  *trace.Buffer
		user trace.Sink
	)
	if cfg.LogPath != "" {
		buf = trace.NewBuffer()
	}
	if cfg.Verbose {
		user = cfg.Sink
	}
	var sink trace.Sink
	if buf != nil {
		sink = trace.Multi(user, buf)
	} else {
		sink = trace.Multi(user)
	}

	return trace.NewScope(sink, ""), buf, true
}
