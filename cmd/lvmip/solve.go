package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmip/bnb"
	"github.com/katalvlaran/lvmip/model"
	"github.com/katalvlaran/lvmip/modelio"
	"github.com/katalvlaran/lvmip/simplex"
	"github.com/katalvlaran/lvmip/trace"
)

const (
	methodAuto    = "auto"
	methodSimplex = "simplex"
	methodBnB     = "bnb"
)

// simplexSolvers maps the LP method names to their drivers.
var simplexSolvers = map[string]func(model.Model, ...simplex.Option) (model.Result, error){
	methodSimplex: simplex.Solve,
	"primal":      simplex.SolvePrimal,
	"dual":        simplex.SolveDual,
}

var pivotRules = map[string]simplex.PivotRule{
	"dantzig": simplex.Dantzig,
	"bland":   simplex.Bland,
}

// solveOptions is the resolved configuration of one solve invocation.
type solveOptions struct {
	method        string
	maxIterations int
	maxQueue      int
	timeLimit     time.Duration
	pivotRule     simplex.PivotRule
	verbose       bool
	logPath       string
	logDir        string
	metricsFile   string
	jobs          int
}

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve MODEL.yaml [MODEL.yaml ...]",
		Short: "Solve one or more model files and print YAML reports",
		Long: `Solve reads every model file, solves them concurrently and prints one YAML
report per model in argument order.

Method "auto" picks branch-and-bound when the model has integer or binary
variables and the simplex driver otherwise. --max-iterations caps pivots for
the LP methods and dequeued nodes for bnb.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.solveConfig(len(args))
			if err != nil {
				return err
			}

			return a.runSolve(cmd.Context(), cmd.OutOrStdout(), o, args)
		},
	}

	fs := cmd.Flags()
	fs.String("method", methodAuto, "auto, simplex, primal, dual or bnb")
	fs.Int("max-iterations", 0, "pivot cap (LP) or node cap (bnb); 0 means the hard limit")
	fs.Int("max-queue", bnb.DefaultMaxQueue, "branch-and-bound queue guard")
	fs.Duration("time-limit", bnb.DefaultTimeLimit, "branch-and-bound time budget")
	fs.String("pivot-rule", "dantzig", "dantzig or bland")
	fs.String("log-path", "", "write the trace of the single model to this file")
	fs.String("log-dir", "", "write one <model>.trace file per model into this directory")
	fs.String("metrics-file", "", "write prometheus counters in text format to this file")
	fs.Int("jobs", 4, "models solved in parallel")

	return cmd
}

// solveConfig resolves and checks the solve settings from viper.
func (a *app) solveConfig(files int) (solveOptions, error) {
	v := a.v
	o := solveOptions{
		method:        strings.ToLower(v.GetString("method")),
		maxIterations: v.GetInt("max-iterations"),
		maxQueue:      v.GetInt("max-queue"),
		timeLimit:     v.GetDuration("time-limit"),
		verbose:       v.GetBool("verbose"),
		logPath:       v.GetString("log-path"),
		logDir:        v.GetString("log-dir"),
		metricsFile:   v.GetString("metrics-file"),
		jobs:          v.GetInt("jobs"),
	}

	if _, ok := simplexSolvers[o.method]; !ok && o.method != methodAuto && o.method != methodBnB {
		return o, errors.Errorf("lvmip: unknown method %q", o.method)
	}
	rule, ok := pivotRules[strings.ToLower(v.GetString("pivot-rule"))]
	if !ok {
		return o, errors.Errorf("lvmip: unknown pivot rule %q", v.GetString("pivot-rule"))
	}
	o.pivotRule = rule

	switch {
	case o.maxIterations < 0:
		return o, errors.Errorf("lvmip: --max-iterations must be >= 0, got %d", o.maxIterations)
	case o.maxQueue < 1:
		return o, errors.Errorf("lvmip: --max-queue must be >= 1, got %d", o.maxQueue)
	case o.timeLimit < 0:
		return o, errors.Errorf("lvmip: --time-limit must be >= 0, got %s", o.timeLimit)
	case o.jobs < 1:
		return o, errors.Errorf("lvmip: --jobs must be >= 1, got %d", o.jobs)
	case o.logPath != "" && files > 1:
		return o, errors.New("lvmip: --log-path needs a single model, use --log-dir")
	}

	return o, nil
}

// runSolve solves files concurrently and writes their reports to out.
func (a *app) runSolve(ctx context.Context, out io.Writer, o solveOptions, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reg := prometheus.NewRegistry()
	metrics, err := trace.NewMetricsSink(reg)
	if err != nil {
		return err
	}

	reports := make([]modelio.ResultFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = a.solveFile(gctx, o, path, metrics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "lvmip: solve")
	}

	failed := 0
	for i, r := range reports {
		if r.Error != "" {
			failed++
		}
		if i > 0 {
			if _, err := io.WriteString(out, "---\n"); err != nil {
				return errors.Wrap(err, "lvmip: write report")
			}
		}
		if err := modelio.EncodeResult(out, r); err != nil {
			return errors.Wrap(err, "lvmip: write report")
		}
	}

	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, reg); err != nil {
			return errors.Wrap(err, "lvmip: write metrics")
		}
	}
	if failed > 0 {
		return errors.Errorf("lvmip: %d of %d model(s) failed", failed, len(files))
	}

	return nil
}

// solveFile loads and solves one model. Failures are recorded in the report.
func (a *app) solveFile(ctx context.Context, o solveOptions, path string, metrics trace.Sink) modelio.ResultFile {
	log := a.log.WithField("model", path)

	m, err := modelio.ReadFile(path)
	if err != nil {
		log.WithError(err).Error("cannot load model")
		return modelio.ResultFile{
			Model:  path,
			Status: model.NotSolved.String(),
			Kind:   model.KindMalformedModel.String(),
			Error:  err.Error(),
		}
	}

	sink := metrics
	if o.verbose {
		sink = trace.Multi(metrics, trace.NewLogrusSink(log))
	}
	method := o.method
	if method == methodAuto {
		method = methodSimplex
		if len(m.IntegerVars()) > 0 {
			method = methodBnB
		}
	}

	start := time.Now()
	res, err := solveWith(ctx, method, m, o, o.traceFile(path), sink, log)
	fields := logrus.Fields{
		"method":     method,
		"status":     res.Status.String(),
		"iterations": res.Iterations,
		"elapsed":    time.Since(start).String(),
	}
	if res.HasSolution() {
		fields["objective"] = res.Objective
	}
	if method == methodBnB {
		fields["nodes"] = res.Nodes
	}
	entry := log.WithFields(fields)
	if err != nil {
		entry.WithError(err).Error("solve failed")
	} else {
		entry.Info("solved")
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	return modelio.Report(path, method, m, res, err)
}

// solveWith dispatches m to the driver named by method.
func solveWith(ctx context.Context, method string, m model.Model, o solveOptions, logPath string,
	sink trace.Sink, log logrus.FieldLogger) (model.Result, error) {
	if method == methodBnB {
		return bnb.Solve(ctx, m,
			bnb.WithMaxIterations(o.maxIterations),
			bnb.WithMaxQueue(o.maxQueue),
			bnb.WithTimeLimit(o.timeLimit),
			bnb.WithPivotRule(o.pivotRule),
			bnb.WithVerbose(sink),
			bnb.WithLogPath(logPath),
			bnb.WithLogger(log),
		)
	}
	solve, ok := simplexSolvers[method]
	if !ok {
		return model.Result{Status: model.NotSolved}, errors.Errorf("lvmip: unknown method %q", method)
	}

	return solve(m,
		simplex.WithMaxIterations(o.maxIterations),
		simplex.WithPivotRule(o.pivotRule),
		simplex.WithVerbose(sink),
		simplex.WithLogPath(logPath),
		simplex.WithLogger(log),
	)
}

// traceFile returns the trace destination of the model at path, if any.
func (o solveOptions) traceFile(path string) string {
	switch {
	case o.logPath != "":
		return o.logPath
	case o.logDir != "":
		base := filepath.Base(path)
		return filepath.Join(o.logDir, strings.TrimSuffix(base, filepath.Ext(base))+".trace")
	default:
		return ""
	}
}
