package trace

import "github.com/google/uuid"

// Scope binds a Sink to one solve run and one position in the search tree.
// The zero Scope is disabled: Emit does nothing.
//
// Scopes derived with At share the run's sequence counter. A run is driven by
// a single goroutine, so the counter is not locked.
type Scope struct {
	sink  Sink
	run   string
	node  int
	depth int
	path  string
	seq   *int
}

// NewScope starts a run on sink. An empty run id gets a fresh UUID.
func NewScope(sink Sink, run string) Scope {
	if run == "" {
		run = uuid.NewString()
	}

	return Scope{sink: sink, run: run, seq: new(int)}
}

// Enabled reports whether events reach a sink.
func (s Scope) Enabled() bool { return s.sink != nil }

// Run returns the run id ("" for the zero Scope).
func (s Scope) Run() string { return s.run }

// At returns a scope positioned at a search-tree node.
func (s Scope) At(node, depth int, path string) Scope {
	s.node, s.depth, s.path = node, depth, path

	return s
}

// Emit stamps e with the run, position and next sequence number and
// forwards it. Fields already set on e win over the scope's position.
func (s Scope) Emit(e Event) {
	if s.sink == nil {
		return
	}
	*s.seq++
	e.Run = s.run
	e.Seq = *s.seq
	if e.Node == 0 {
		e.Node = s.node
	}
	if e.Depth == 0 {
		e.Depth = s.depth
	}
	if e.Path == "" {
		e.Path = s.path
	}
	s.sink.Emit(e)
}
