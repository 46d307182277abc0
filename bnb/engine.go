// Package bnb - engine and per-call search arena.
//
// Engine holds configuration only. Solve creates a search value that owns
// every piece of mutable state of one run (queue, incumbent, counters, trace
// scope and buffer) and is discarded when Solve returns.
package bnb

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lvmip/model"
	"github.com/katalvlaran/lvmip/simplex"
	"github.com/katalvlaran/lvmip/trace"
)

// Engine runs branch-and-bound searches with a fixed configuration.
type Engine struct {
	opts Options
}

// New builds an Engine from DefaultOptions and opts.
// Returns ErrOptionViolation (wrapped with detail) for an invalid option.
func New(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Engine{opts: o}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// Solve is a shorthand for New(opts...) followed by Engine.Solve.
func Solve(ctx context.Context, m model.Model, opts ...Option) (model.Result, error) {
	eng, err := New(opts...)
	if err != nil {
		return model.Result{Status: model.NotSolved, Kind: model.KindMalformedModel}, err
	}

	return eng.Solve(ctx, m)
}

// Solve searches m for an optimal point satisfying its integrality tags.
//
// Verdicts come back with a nil error; see the package documentation for the
// termination table. A malformed model or a structural failure of the root
// relaxation (for example an equality row) comes back as an error carrying a
// model.ErrorKind, together with a NotSolved result of the same kind.
func (e *Engine) Solve(ctx context.Context, m model.Model) (model.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := e.newSearch(ctx, m)
	s.sc.Emit(trace.Event{Kind: trace.KindStart, Message: "bnb"})
	err := s.run()

	return s.finish(err)
}

// search is the arena of one Solve call.
type search struct {
	ctx  context.Context
	cfg  Options
	orig model.Model
	base model.Model

	sc  trace.Scope
	buf *trace.Buffer

	queue    []node
	nodes    int
	deadline time.Time

	hasInc bool
	inc    model.Result

	truncated bool
	unproven  int // nodes discarded on a pivot cap or a singular pivot

	res model.Result
}

func (e *Engine) newSearch(ctx context.Context, m model.Model) *search {
	s := &search{ctx: ctx, cfg: e.opts, orig: m}
	var user trace.Sink
	if s.cfg.Verbose {
		user = s.cfg.Sink
	}
	if s.cfg.LogPath != "" {
		s.buf = trace.NewBuffer()
		s.sc = trace.NewScope(trace.Multi(user, s.buf), "")
	} else {
		s.sc = trace.NewScope(trace.Multi(user), "")
	}
	s.res.RunID = s.sc.Run()

	return s
}

// run executes the root solve and, when needed, the search loop.
func (s *search) run() error {
	if err := s.orig.Validate(); err != nil {
		s.res.Status, s.res.Kind = model.NotSolved, model.KindMalformedModel
		return model.WithKind(model.KindMalformedModel, errors.Wrap(err, "bnb: solve"))
	}
	s.base = relaxation(s.orig)

	root, err := s.solve(node{}, simplex.Auto, s.sc)
	s.sc.Emit(trace.Event{Kind: trace.KindRoot, Status: root.Status.String(), Objective: root.Objective})
	if err != nil {
		s.res.Status, s.res.Kind = model.NotSolved, root.Kind
		return errors.Wrap(err, "bnb: root relaxation")
	}
	s.res.RootObjective = root.Objective
	if root.Status != model.Optimal {
		s.res.Status, s.res.Kind = root.Status, root.Kind
		return nil
	}
	if j, _ := s.branchVar(root.X); j < 0 {
		s.adopt(root)
		s.res.Status = model.Optimal
		return nil
	}

	s.deadline = time.Now().Add(s.cfg.timeLimit())
	s.enqueue(node{})
	s.loop()
	s.conclude()

	return nil
}

// loop processes the queue until it empties or a resource guard fires.
func (s *search) loop() {
	for len(s.queue) > 0 {
		if reason := s.guard(); reason != "" {
			s.abort(reason)
			return
		}
		s.evaluate(s.dequeue())
		if n := len(s.queue); n > s.cfg.queueLimit() {
			s.abort(fmt.Sprintf("queue length %d exceeds %d", n, s.cfg.queueLimit()))
			return
		}
	}
}

// guard returns a non-empty reason when the search must stop before the
// next node.
func (s *search) guard() string {
	if s.nodes >= s.cfg.nodeLimit() {
		return fmt.Sprintf("node limit %d reached", s.cfg.nodeLimit())
	}
	if !time.Now().Before(s.deadline) {
		return "time limit reached"
	}
	select {
	case <-s.ctx.Done():
		return "canceled: " + s.ctx.Err().Error()
	default:
	}

	return ""
}

func (s *search) abort(reason string) {
	s.truncated = true
	s.sc.Emit(trace.Event{Kind: trace.KindAbort, Message: reason})
}

func (s *search) enqueue(nd node) { s.queue = append(s.queue, nd) }

func (s *search) dequeue() node {
	nd := s.queue[0]
	s.queue[0] = node{}
	s.queue = s.queue[1:]

	return nd
}

// evaluate solves one node and applies the prune / incumbent / branch policy.
func (s *search) evaluate(nd node) {
	s.nodes++
	sc := s.sc.At(s.nodes, nd.depth, nd.path)
	method := nd.method()
	sc.Emit(trace.Event{Kind: trace.KindDequeued, Message: method.String()})

	res, err := s.solve(nd, method, sc)
	if err != nil || res.Status != model.Optimal {
		if res.Kind == model.KindIterationLimit || res.Kind == model.KindNumericallySingular {
			s.unproven++
		}
		ev := trace.Event{Kind: trace.KindPrunedInfeasible, Status: res.Status.String()}
		if err != nil {
			ev.Message = err.Error()
		}
		sc.Emit(ev)
		return
	}

	if s.hasInc && !s.orig.Sense.Better(res.Objective, s.inc.Objective, Tolerance) {
		sc.Emit(trace.Event{Kind: trace.KindPrunedBound, Objective: res.Objective})
		return
	}

	j, v := s.branchVar(res.X)
	if j < 0 {
		if !s.hasInc || s.orig.Sense.Better(res.Objective, s.inc.Objective, Tolerance) {
			s.adopt(res)
			sc.Emit(trace.Event{Kind: trace.KindIncumbent, Objective: res.Objective})
			return
		}
		sc.Emit(trace.Event{Kind: trace.KindLeaf, Objective: res.Objective})
		return
	}

	sc.Emit(trace.Event{Kind: trace.KindBranched, Var: j, Value: v})
	s.enqueue(nd.child(Bound{Var: j, Op: model.LessEq, Value: math.Floor(v)}, leftLabel))
	s.enqueue(nd.child(Bound{Var: j, Op: model.GreaterEq, Value: math.Ceil(v)}, rightLabel))
}

// branchVar returns the variable with the largest fractional part (first
// index on ties) among those not within Tolerance of an integer, or −1 when
// every original variable of x is integral.
func (s *search) branchVar(x []float64) (int, float64) {
	var (
		best = Tolerance
		j    = -1
	)
	for k := 0; k < s.orig.NumVars() && k < len(x); k++ {
		if math.Abs(x[k]-math.Round(x[k])) <= Tolerance {
			continue
		}
		if f := x[k] - math.Floor(x[k]); f > best {
			best, j = f, k
		}
	}
	if j < 0 {
		return -1, 0
	}

	return j, x[j]
}

// solve runs simplex on the root relaxation constrained by nd's bounds.
func (s *search) solve(nd node, method simplex.Method, sc trace.Scope) (model.Result, error) {
	cfg := simplex.DefaultOptions()
	cfg.PivotRule = s.cfg.PivotRule
	cfg.Logger = s.cfg.Logger
	cfg.Scope = sc

	res, err := simplex.Execute(nd.constrain(s.base), method, cfg)
	s.res.Iterations += res.Iterations

	return res, err
}

// adopt makes res the incumbent. Duals are trimmed to the original rows.
func (s *search) adopt(res model.Result) {
	if k := s.orig.NumRows(); len(res.Duals) > k {
		res.Duals = res.Duals[:k]
	}
	s.inc, s.hasInc = res, true
}

// conclude maps the search outcome to a status.
func (s *search) conclude() {
	switch {
	case s.truncated && s.hasInc:
		s.res.Status, s.res.Kind = model.Feasible, model.KindSearchExhausted
	case s.truncated:
		s.res.Status, s.res.Kind = model.NotSolved, model.KindSearchExhausted
	case s.hasInc:
		s.res.Status = model.Optimal
	default:
		s.res.Status = model.Infeasible
	}
	if s.unproven > 0 {
		s.res.Warnings = append(s.res.Warnings,
			fmt.Sprintf("%d node(s) discarded without a verdict (pivot limit or singular pivot)", s.unproven))
	}
}

// finish copies the incumbent, closes the trace and persists it.
func (s *search) finish(err error) (model.Result, error) {
	s.res.Nodes = s.nodes
	if s.hasInc {
		s.res.X = s.inc.X
		s.res.Objective = s.inc.Objective
		s.res.Basis = s.inc.Basis
		s.res.ReducedCosts = s.inc.ReducedCosts
		s.res.Duals = s.inc.Duals
	}
	s.sc.Emit(trace.Event{Kind: trace.KindDone, Status: s.res.Status.String(), Objective: s.res.Objective})
	if path, warn := trace.Persist(s.buf, s.cfg.LogPath, s.cfg.Logger); warn != "" {
		s.res.Warnings = append(s.res.Warnings, warn)
	} else {
		s.res.LogPath = path
	}

	return s.res, err
}
