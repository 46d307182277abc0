// SPDX-License-Identifier: MIT

// Package simplex: functional configuration.
//
// Defaults:
//   - MaxIterations: HardPivotLimit (values above it are clamped down).
//   - PivotRule:     Dantzig.
//   - Verbose:       false (no events reach Sink).
//   - LogPath:       "" (trace text is not persisted).
package simplex

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmip/trace"
)

const (
	// Eps is the numeric tolerance of every sign test on the tableau.
	Eps = 1e-10

	// HardPivotLimit caps pivots per solve regardless of configuration.
	HardPivotLimit = 20
)

const panicNegativeIterations = "simplex: WithMaxIterations: n must be >= 0"

// PivotRule selects the entering/leaving tie-breaking policy.
type PivotRule int

const (
	// Dantzig enters the most negative reduced cost; ratio ties go to the lowest row.
	Dantzig PivotRule = iota
	// Bland enters the lowest eligible column; ratio ties go to the lowest
	// basic column. Never cycles.
	Bland
)

// String implements fmt.Stringer.
func (r PivotRule) String() string {
	if r == Bland {
		return "bland"
	}

	return "dantzig"
}

// Method selects the driver used by Execute.
type Method int

const (
	// Auto runs Primal when the starting basis is feasible, Dual otherwise.
	Auto Method = iota
	// Primal runs the primal simplex; an infeasible start is reported Infeasible.
	Primal
	// Dual restores feasibility with dual pivots, then finishes with primal pivots.
	Dual
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case Primal:
		return "primal"
	case Dual:
		return "dual"
	default:
		return "unknown"
	}
}

// Options configures one solve call.
type Options struct {
	// MaxIterations is the configured pivot cap; 0 means HardPivotLimit.
	MaxIterations int

	// PivotRule selects Dantzig or Bland.
	PivotRule PivotRule

	// Verbose routes trace events to Sink.
	Verbose bool

	// Sink receives trace events when Verbose is set.
	Sink trace.Sink

	// LogPath, when non-empty, receives the trace text after the solve.
	LogPath string

	// Logger reports best-effort failures (trace persistence).
	Logger logrus.FieldLogger

	// Scope attaches the solve to an enclosing run (branch-and-bound).
	// When set, Verbose/Sink/LogPath are ignored: the enclosing run owns them.
	Scope trace.Scope
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{MaxIterations: HardPivotLimit, PivotRule: Dantzig}
}

// WithMaxIterations sets the pivot cap (clamped to HardPivotLimit).
// Panics on negative n (programmer error).
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicNegativeIterations)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithPivotRule selects the pivoting rule.
func WithPivotRule(r PivotRule) Option {
	return func(o *Options) { o.PivotRule = r }
}

// WithVerbose enables trace emission to sink.
func WithVerbose(sink trace.Sink) Option {
	return func(o *Options) {
		o.Verbose = true
		o.Sink = sink
	}
}

// WithSink sets the trace sink without changing Verbose.
func WithSink(sink trace.Sink) Option {
	return func(o *Options) { o.Sink = sink }
}

// WithLogPath persists the trace text to path after the solve.
func WithLogPath(path string) Option {
	return func(o *Options) { o.LogPath = path }
}

// WithLogger sets the logger used for best-effort warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithScope attaches the solve to an enclosing trace run.
func WithScope(s trace.Scope) Option {
	return func(o *Options) { o.Scope = s }
}

// pivotLimit returns min(MaxIterations, HardPivotLimit), with 0 meaning the hard limit.
func (o Options) pivotLimit() int {
	if o.MaxIterations <= 0 || o.MaxIterations > HardPivotLimit {
		return HardPivotLimit
	}

	return o.MaxIterations
}

func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
