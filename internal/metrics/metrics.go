// Package metrics exposes restock workflow counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for a transition attempt.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Recorder owns a private registry. A nil *Recorder records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	created     prometheus.Counter
	transitions *prometheus.CounterVec
}

// New creates a Recorder with Go runtime collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "restock_requests_created_total",
			Help: "Restock requests submitted.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restock_transitions_total",
			Help: "Approve and reject attempts by outcome.",
		}, []string{"action", "outcome"}),
	}
	reg.MustRegister(
		r.created,
		r.transitions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Created counts a submitted restock request.
func (r *Recorder) Created() {
	if r == nil {
		return
	}
	r.created.Inc()
}

// Transition counts an approve or reject attempt.
func (r *Recorder) Transition(action, outcome string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(action, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
