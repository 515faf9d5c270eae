// Package dispatcher decouples event classification (synchronous, testable)
// from transmission (asynchronous, best-effort). Events go through a bounded
// queue consumed by a single worker; a full queue drops the event rather than
// block the caller.
package dispatcher

import (
	"context"
	"log/slog"

	"revenew/internal/logclient"
	"revenew/internal/metrics"
	"revenew/pkg/domain"
)

const defaultQueueSize = 64

type job struct {
	purchase *logclient.PurchaseEvent
	download *logclient.DownloadEvent
}

type Dispatcher struct {
	client  *logclient.Client
	appName string
	queue   chan job
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithQueueSize(size int) Option {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan job, size)
		}
	}
}

func New(client *logclient.Client, appName string, m *metrics.Metrics, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:  client,
		appName: appName,
		queue:   make(chan job, defaultQueueSize),
		logger:  slog.Default(),
		metrics: m,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// EnqueuePurchase queues a classified transaction for delivery. Never blocks;
// under backpressure the event is dropped and counted.
func (d *Dispatcher) EnqueuePurchase(ev domain.ClassifiedEvent) {
	event := logclient.NewPurchaseEvent(ev, d.appName)
	d.enqueue(job{purchase: &event})
}

// EnqueueDownload queues a first-launch download event.
func (d *Dispatcher) EnqueueDownload(userID string) {
	d.enqueue(job{download: &logclient.DownloadEvent{UserID: userID, AppName: d.appName}})
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.queue <- j:
	default:
		d.metrics.EventsDropped.Inc()
		d.logger.Warn("event queue full, dropping event")
	}
}

// Run consumes the queue until ctx is cancelled. Delivery failures are logged
// and counted, never retried and never propagated: analytics loss must not
// affect commerce correctness.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-d.queue:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	var err error
	switch {
	case j.purchase != nil:
		_, err = d.client.LogPurchase(ctx, *j.purchase)
		if err == nil {
			d.metrics.PurchasesLogged.Inc()
		}
	case j.download != nil:
		_, err = d.client.LogDownload(ctx, *j.download)
		if err == nil {
			d.metrics.DownloadsLogged.Inc()
		}
	}
	if err != nil {
		kind := logclient.KindOf(err)
		d.metrics.DeliveryFailures.WithLabelValues(string(kind)).Inc()
		d.logger.Warn("event delivery failed", "kind", string(kind), "error", err)
	}
}
