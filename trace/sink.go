// SPDX-License-Identifier: MIT

package trace

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Sink receives trace events in emission order.
// Implementations shared between concurrent solves must be safe for
// concurrent use; every sink in this package is.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Nop discards every event.
var Nop Sink = SinkFunc(func(Event) {})

// multi fans out to several sinks.
type multi []Sink

func (m multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Multi returns a sink that forwards to every non-nil sink in order.
// It returns nil when no sink remains, which Scope treats as disabled.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// Buffer collects events and their rendered text lines.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Emit appends e.
func (b *Buffer) Emit(e Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Event(nil), b.events...)
}

// Lines returns the rendered text line of every recorded event.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.String()
	}

	return out
}

// Len returns the number of recorded events.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.events)
}

// Count returns how many recorded events have kind k.
func (b *Buffer) Count(k Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Kind == k {
			n++
		}
	}

	return n
}

// WriteTo writes every line followed by a newline.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	lines := b.Lines()
	if len(lines) == 0 {
		return 0, nil
	}
	n, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")

	return int64(n), err
}

// WriteFile writes the trace text verbatim to path, replacing any file there.
func (b *Buffer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "trace: create log file")
	}
	if _, err = b.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "trace: write log file")
	}

	return errors.Wrap(f.Close(), "trace: close log file")
}
