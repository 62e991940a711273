// Package ircmetrics provides a Prometheus-backed irc.Observer that counts
// lifecycle events and tick-driven state transitions.
package ircmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ircbridge/conn"
)

// Observer implements irc.Observer, exporting connection lifecycle counters
// for a single Connection. label identifies the server (e.g. its address)
// across the "server" label on every exported metric.
type Observer struct {
	label string

	events *prometheus.CounterVec
	ticks  *prometheus.CounterVec
}

// NewObserver creates an Observer and registers its collectors with reg.
// Passing prometheus.DefaultRegisterer matches the package-level default
// most Prometheus-instrumented Go services use.
func NewObserver(reg prometheus.Registerer, label string) (*Observer, error) {
	o := &Observer{
		label: label,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ircbridge",
			Subsystem: "conn",
			Name:      "events_total",
			Help:      "Count of ConnEvent values emitted by the connection core, by kind.",
		}, []string{"server", "kind"}),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ircbridge",
			Subsystem: "conn",
			Name:      "ticks_total",
			Help:      "Count of Tick calls observed, by resulting link state.",
		}, []string{"server", "state"}),
	}

	if err := reg.Register(o.events); err != nil {
		return nil, err
	}
	if err := reg.Register(o.ticks); err != nil {
		return nil, err
	}
	return o, nil
}

// OnEvent implements irc.Observer.
func (o *Observer) OnEvent(ev irc.ConnEvent) {
	o.events.WithLabelValues(o.label, ev.Kind.String()).Inc()
}

// OnTick implements irc.Observer.
func (o *Observer) OnTick(state string) {
	o.ticks.WithLabelValues(o.label, state).Inc()
}
