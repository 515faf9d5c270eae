// Package observer runs the long-lived transaction observation loop. It is
// the only consumer of the commerce layer's update stream and processes items
// strictly one at a time: two near-simultaneous transactions must never both
// read a stale last-logged id.
package observer

import (
	"context"
	"log/slog"

	"revenew/internal/classifier"
	"revenew/internal/metrics"
	"revenew/pkg/domain"
)

// Collaborators are consumer-side interfaces so the loop can be tested
// against the orchestrator, fakes, or mocks interchangeably.
type (
	// Catalog looks a product up in the last-fetched catalog.
	Catalog interface {
		Product(id string) (domain.Product, bool)
	}

	// Ledger is the persisted last-logged-transaction slot.
	Ledger interface {
		LastLogged(ctx context.Context) (string, error)
		SetLastLogged(ctx context.Context, id string) error
	}

	// Dispatcher accepts classified events for asynchronous delivery.
	Dispatcher interface {
		EnqueuePurchase(ev domain.ClassifiedEvent)
	}

	// Finisher acknowledges a transaction with the store.
	Finisher interface {
		Finish(ctx context.Context, txn domain.Transaction) error
	}

	// SubscriptionRefresher re-derives the entitlement state after a newly
	// reported transaction.
	SubscriptionRefresher interface {
		RefreshSubscription(ctx context.Context)
	}
)

type Observer struct {
	updates    <-chan domain.TransactionUpdate
	catalog    Catalog
	ledger     Ledger
	dispatcher Dispatcher
	finisher   Finisher
	refresher  SubscriptionRefresher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Observer)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Observer) {
		o.logger = logger
	}
}

func New(
	updates <-chan domain.TransactionUpdate,
	catalog Catalog,
	ledger Ledger,
	dispatcher Dispatcher,
	finisher Finisher,
	refresher SubscriptionRefresher,
	m *metrics.Metrics,
	opts ...Option,
) *Observer {
	o := &Observer{
		updates:    updates,
		catalog:    catalog,
		ledger:     ledger,
		dispatcher: dispatcher,
		finisher:   finisher,
		refresher:  refresher,
		logger:     slog.Default(),
		metrics:    m,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run consumes the update stream until ctx is cancelled or the stream closes.
// Items are handled sequentially; there is no fan-out.
func (o *Observer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-o.updates:
			if !ok {
				return nil
			}
			o.handle(ctx, upd)
		}
	}
}

func (o *Observer) handle(ctx context.Context, upd domain.TransactionUpdate) {
	txn := upd.Transaction

	// Unverified transactions are neither logged nor finished.
	if !upd.Verified {
		o.metrics.UnverifiedSkipped.Inc()
		o.logger.Debug("skipping unverified transaction",
			"transaction_id", txn.ID, "reason", upd.VerificationError)
		return
	}

	// Everything past verification gets acknowledged, whatever the logging
	// outcome: acknowledgment is independent of reporting.
	defer func() {
		if err := o.finisher.Finish(ctx, txn); err != nil {
			o.logger.Warn("finishing transaction failed", "transaction_id", txn.ID, "error", err)
		}
	}()

	product, ok := o.catalog.Product(txn.ProductID)
	if !ok {
		// Catalog not fetched yet; an acceptable miss, not an error.
		o.logger.Debug("no catalog entry for transaction", "product_id", txn.ProductID)
		return
	}

	if txn.Revoked() {
		return
	}

	lastLogged, err := o.ledger.LastLogged(ctx)
	if err != nil {
		o.logger.Error("reading transaction ledger failed", "error", err)
		return
	}

	event, ok := classifier.Classify(txn, product, lastLogged)
	if !ok {
		o.metrics.DuplicatesSkipped.Inc()
		return
	}

	o.dispatcher.EnqueuePurchase(event)
	if err := o.ledger.SetLastLogged(ctx, txn.ID); err != nil {
		o.logger.Error("persisting last logged transaction failed", "error", err)
	}
	o.refresher.RefreshSubscription(ctx)
}
