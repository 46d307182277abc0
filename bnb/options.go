// Package bnb provides tunable options for the branch-and-bound engine.
package bnb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvmip/simplex"
	"github.com/katalvlaran/lvmip/trace"
)

const (
	// HardNodeLimit caps dequeued nodes per solve regardless of configuration.
	HardNodeLimit = 15

	// DefaultMaxQueue is the queue length above which the search is abandoned.
	DefaultMaxQueue = 25

	// DefaultTimeLimit is both the default and the upper bound of TimeLimit.
	DefaultTimeLimit = time.Minute

	// Tolerance is used by the integrality, bounding and improvement tests.
	Tolerance = 1e-6
)

// Option configures the engine via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the engine configuration.
type Options struct {
	// MaxIterations is the configured node cap; 0 means HardNodeLimit and
	// larger values are clamped to it.
	MaxIterations int

	// MaxQueue aborts the search when the queue grows beyond it.
	MaxQueue int

	// TimeLimit bounds the wall-clock time of the search loop.
	TimeLimit time.Duration

	// PivotRule is passed to every node solve.
	PivotRule simplex.PivotRule

	// Verbose routes trace events to Sink.
	Verbose bool

	// Sink receives trace events when Verbose is set.
	Sink trace.Sink

	// LogPath, when non-empty, receives the trace text after the solve.
	LogPath string

	// Logger reports best-effort failures.
	Logger logrus.FieldLogger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns an Options with the documented limits:
//   - MaxIterations: HardNodeLimit
//   - MaxQueue:      DefaultMaxQueue
//   - TimeLimit:     DefaultTimeLimit
//   - PivotRule:     simplex.Dantzig
//   - no trace, no log file.
func DefaultOptions() Options {
	return Options{
		MaxIterations: HardNodeLimit,
		MaxQueue:      DefaultMaxQueue,
		TimeLimit:     DefaultTimeLimit,
		PivotRule:     simplex.Dantzig,
	}
}

// WithMaxIterations sets the node cap.
//
//	n > 0:  min(n, HardNodeLimit)
//	n == 0: HardNodeLimit
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "MaxIterations cannot be negative (%d)", n)
			return
		}
		o.MaxIterations = n
	}
}

// WithMaxQueue sets the queue guard; n must be at least 1.
func WithMaxQueue(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = errors.Wrapf(ErrOptionViolation, "MaxQueue must be positive (%d)", n)
			return
		}
		o.MaxQueue = n
	}
}

// WithTimeLimit sets the search time budget. Zero restores the default and
// values above DefaultTimeLimit are clamped to it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "TimeLimit cannot be negative (%s)", d)
			return
		}
		o.TimeLimit = d
	}
}

// WithPivotRule selects the simplex pivoting rule used at every node.
func WithPivotRule(r simplex.PivotRule) Option {
	return func(o *Options) { o.PivotRule = r }
}

// WithVerbose enables trace emission to sink.
func WithVerbose(sink trace.Sink) Option {
	return func(o *Options) {
		o.Verbose = true
		if sink != nil {
			o.Sink = sink
		}
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
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

// nodeLimit returns min(MaxIterations, HardNodeLimit), 0 meaning the hard limit.
func (o Options) nodeLimit() int {
	if o.MaxIterations <= 0 || o.MaxIterations > HardNodeLimit {
		return HardNodeLimit
	}

	return o.MaxIterations
}

// timeLimit returns TimeLimit clamped to (0, DefaultTimeLimit].
func (o Options) timeLimit() time.Duration {
	if o.TimeLimit <= 0 || o.TimeLimit > DefaultTimeLimit {
		return DefaultTimeLimit
	}

	return o.TimeLimit
}

// queueLimit returns MaxQueue, DefaultMaxQueue when unset.
func (o Options) queueLimit() int {
	if o.MaxQueue <= 0 {
		return DefaultMaxQueue
	}

	return o.MaxQueue
}
