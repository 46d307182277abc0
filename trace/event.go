// SPDX-License-Identifier: MIT

package trace

import (
	"fmt"
	"strings"
)

// Kind names the step an Event describes.
type Kind string

const (
	KindStart            Kind = "start"             // solve call entered
	KindPivot            Kind = "pivot"             // one simplex pivot
	KindSolved           Kind = "solved"            // simplex finished with a status
	KindRoot             Kind = "root"              // root relaxation solved
	KindDequeued         Kind = "dequeued"          // B&B node taken from the queue
	KindPrunedInfeasible Kind = "pruned-infeasible" // node relaxation not optimal
	KindPrunedBound      Kind = "pruned-bound"      // node cannot beat the incumbent
	KindIncumbent        Kind = "incumbent"         // strictly better integer point
	KindLeaf             Kind = "leaf"              // integral node, no improvement
	KindBranched         Kind = "branched"          // two children enqueued
	KindAbort            Kind = "abort"             // resource guard fired
	KindDone             Kind = "done"              // solve call returning
)

// Event is one structured trace record.
// Zero-valued numeric fields are omitted when rendered.
type Event struct {
	Run       string
	Seq       int
	Kind      Kind
	Node      int // 0 for the root or plain simplex
	Depth     int
	Path      string
	Iteration int
	Row       int
	Col       int
	Var       int // 0-based column index, rendered as x<Var+1>
	Value     float64
	Objective float64
	Status    string
	Message   string
}

// String renders the event as a single text line.
func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", e.Seq, e.Kind)
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%s", e.Path)
	}
	if e.Node > 0 {
		fmt.Fprintf(&b, " node=%d depth=%d", e.Node, e.Depth)
	}
	switch e.Kind {
	case KindPivot:
		fmt.Fprintf(&b, " iter=%d row=%d col=%d obj=%g", e.Iteration, e.Row, e.Col, e.Objective)
	case KindBranched:
		fmt.Fprintf(&b, " var=%s value=%g", e.VarName(), e.Value)
	default:
		if e.Status != "" {
			fmt.Fprintf(&b, " status=%s", e.Status)
		}
		if e.Objective != 0 {
			fmt.Fprintf(&b, " obj=%g", e.Objective)
		}
	}
	if e.Message != "" {
		fmt.Fprintf(&b, " msg=%q", e.Message)
	}

	return b.String()
}

// VarName returns the display name of Var, matching the default model
// variable names (x1, x2, …).
func (e Event) VarName() string { return fmt.Sprintf("x%d", e.Var+1) }

// Fields returns the event as a flat key/value map for structured loggers.
func (e Event) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"run":  e.Run,
		"seq":  e.Seq,
		"kind": string(e.Kind),
	}
	if e.Path != "" {
		f["path"] = e.Path
	}
	if e.Node > 0 {
		f["node"] = e.Node
		f["depth"] = e.Depth
	}
	if e.Kind == KindPivot {
		f["iter"] = e.Iteration
		f["row"] = e.Row
		f["col"] = e.Col
	}
	if e.Kind == KindBranched {
		f["var"] = e.VarName()
		f["value"] = e.Value
	}
	if e.Status != "" {
		f["status"] = e.Status
	}
	if e.Objective != 0 {
		f["objective"] = e.Objective
	}
	if e.Message != "" {
		f["msg"] = e.Message
	}

	return f
}
