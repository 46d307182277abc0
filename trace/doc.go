// Package trace carries the structured event stream emitted by the lvmip
// solvers.
//
// Solvers never print. Every interesting step (a pivot, a node dequeued, a
// node pruned, an incumbent improvement, a branch) becomes an Event handed to
// an injected Sink. Rendering and persistence are the caller's concern:
//
//   - Buffer       keeps ordered text lines and can write them to a file.
//   - LogrusSink   one logrus entry per event, with structured fields.
//   - LogrSink     one logr V(1) entry per event, with key/value pairs.
//   - MetricsSink  prometheus counters for pivots, nodes and verdicts.
//   - Multi        fans an event out to several sinks.
//
// A Scope binds a sink to one solve run (run id, node, depth, branch path)
// and stamps every event with a per-run sequence number, so interleaved
// output from concurrent solves stays attributable.
package trace
