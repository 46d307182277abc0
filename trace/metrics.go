package trace

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "lvmip"
	outcomeLabel     = "outcome"
	statusLabel      = "status"
)

// MetricsSink counts events into prometheus collectors.
type MetricsSink struct {
	pivots prometheus.Counter
	nodes  *prometheus.CounterVec
	solves *prometheus.CounterVec
	aborts prometheus.Counter
}

// NewMetricsSink creates the collectors and registers them on reg.
// A nil reg leaves them unregistered (useful in tests with testutil).
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	s := &MetricsSink{
		pivots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pivots_total",
			Help:      "Simplex pivots performed.",
		}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "nodes_total",
			Help:      "Branch-and-bound nodes evaluated, by outcome.",
		}, []string{outcomeLabel}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "solves_total",
			Help:      "Completed solve calls, by final status.",
		}, []string{statusLabel}),
		aborts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "search_aborts_total",
			Help:      "Searches stopped by a resource guard.",
		}),
	}
	if reg == nil {
		return s, nil
	}
	for _, c := range s.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "trace: register metrics")
		}
	}

	return s, nil
}

// Collectors returns every collector owned by the sink.
func (s *MetricsSink) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.pivots, s.nodes, s.solves, s.aborts}
}

// Emit updates the counter matching e.Kind.
func (s *MetricsSink) Emit(e Event) {
	switch e.Kind {
	case KindPivot:
		s.pivots.Inc()
	case KindPrunedInfeasible, KindPrunedBound, KindIncumbent, KindLeaf, KindBranched:
		s.nodes.WithLabelValues(string(e.Kind)).Inc()
	case KindAbort:
		s.aborts.Inc()
	case KindDone:
		s.solves.WithLabelValues(e.Status).Inc()
	}
}
