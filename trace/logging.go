package trace

import (
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// LogrusSink renders events as logrus entries.
// Pivots are logged at Debug, everything else at Info.
type LogrusSink struct {
	log logrus.FieldLogger
}

// NewLogrusSink wraps log; a nil logger uses logrus.StandardLogger().
func NewLogrusSink(log logrus.FieldLogger) *LogrusSink {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &LogrusSink{log: log}
}

// Emit logs e with its fields.
func (s *LogrusSink) Emit(e Event) {
	entry := s.log.WithFields(logrus.Fields(e.Fields()))
	switch e.Kind {
	case KindPivot:
		entry.Debug("simplex pivot")
	case KindAbort:
		entry.Warn("search aborted")
	default:
		entry.Info(string(e.Kind))
	}
}

// LogrSink renders events through a logr.Logger at verbosity 1.
type LogrSink struct {
	log logr.Logger
}

// NewLogrSink wraps log.
func NewLogrSink(log logr.Logger) *LogrSink { return &LogrSink{log: log} }

// Emit logs e as key/value pairs.
func (s *LogrSink) Emit(e Event) {
	f := e.Fields()
	kv := make([]interface{}, 0, 2*len(f))
	for _, k := range fieldOrder {
		if v, ok := f[k]; ok {
			kv = append(kv, k, v)
		}
	}
	s.log.V(1).Info(string(e.Kind), kv...)
}

// fieldOrder keeps logr output deterministic.
var fieldOrder = []string{
	"run", "seq", "kind", "path", "node", "depth",
	"iter", "row", "col", "var", "value", "status", "objective", "msg",
}

// Persist writes buf to path when path is non-empty. Failures never reach the
// caller as errors: they are logged on log as warnings and returned as text
// so the caller can attach them to its result.
func Persist(buf *Buffer, path string, log logrus.FieldLogger) (written, warning string) {
	if buf == nil || path == "" {
		return "", ""
	}
	if err := buf.WriteFile(path); err != nil {
		if log == nil {
			log = logrus.StandardLogger()
		}
		log.WithError(err).WithField("path", path).Warn("trace log not written")

		return "", err.Error()
	}

	return path, ""
}
