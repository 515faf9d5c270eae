package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EventsReceived *prometheus.CounterVec
	EventsRejected *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		EventsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "revenew_sink_events_received_total",
			Help: "Events accepted by type",
		}, []string{"type"}),
		EventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "revenew_sink_events_rejected_total",
			Help: "Events rejected by type",
		}, []string{"type"}),
	}
}
