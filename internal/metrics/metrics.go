// Package metrics exposes the SDK's diagnostic counters. Analytics delivery
// is best-effort, so these counters are the only place a dropped or failed
// event remains visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PurchasesLogged   prometheus.Counter
	DownloadsLogged   prometheus.Counter
	EventsDropped     prometheus.Counter
	DeliveryFailures  *prometheus.CounterVec
	DuplicatesSkipped prometheus.Counter
	UnverifiedSkipped prometheus.Counter
}

// New registers the SDK counters on reg. Pass a fresh registry in tests;
// multiple instances on one registry would collide.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		PurchasesLogged: factory.NewCounter(prometheus.CounterOpts{
			Name: "revenew_purchase_events_logged_total",
			Help: "Purchase events handed to the analytics backend",
		}),
		DownloadsLogged: factory.NewCounter(prometheus.CounterOpts{
			Name: "revenew_download_events_logged_total",
			Help: "First-launch download events handed to the analytics backend",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "revenew_events_dropped_total",
			Help: "Events dropped because the dispatch queue was full",
		}),
		DeliveryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "revenew_delivery_failures_total",
			Help: "Failed delivery attempts by taxonomy kind",
		}, []string{"kind"}),
		DuplicatesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "revenew_duplicate_transactions_skipped_total",
			Help: "Stream transactions skipped by last-logged dedup",
		}),
		UnverifiedSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "revenew_unverified_transactions_skipped_total",
			Help: "Stream transactions skipped because verification failed",
		}),
	}
}
