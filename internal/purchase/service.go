// Package purchase holds the Manager, the orchestrator behind the public SDK
// surface. It owns the observable state, drives purchase attempts through the
// commerce layer and runs the background delivery and observation loops.
package purchase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"revenew/internal/classifier"
	"revenew/internal/entitlement"
	"revenew/internal/identity"
	"revenew/internal/metrics"
	"revenew/internal/observer"
	"revenew/internal/storage"
	"revenew/pkg/commerce"
	"revenew/pkg/domain"
)

// User-facing failure messages. The purchase flow never surfaces raw store
// errors to the state.
const (
	msgPurchaseFailed     = "Failed to purchase the product."
	msgSomethingWentWrong = "Something went wrong, please try again."
)

// EventDispatcher is the delivery side the Manager hands events to.
// *dispatcher.Dispatcher satisfies it.
type EventDispatcher interface {
	EnqueuePurchase(ev domain.ClassifiedEvent)
	EnqueueDownload(userID string)
	Run(ctx context.Context) error
}

type Manager struct {
	commerce   commerce.Commerce
	identity   *identity.Service
	ledger     *storage.TransactionLedger
	dispatcher EventDispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu          sync.Mutex
	trackedIDs  []string
	state       State
	subscribers []chan State

	runMu  sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithTrackedProductIDs sets the initial catalog of product identifiers the
// SDK fetches and evaluates entitlements against.
func WithTrackedProductIDs(ids []string) Option {
	return func(m *Manager) {
		m.trackedIDs = append([]string(nil), ids...)
	}
}

func New(
	store commerce.Commerce,
	kv storage.KV,
	disp EventDispatcher,
	m *metrics.Metrics,
	opts ...Option,
) (*Manager, error) {
	if store == nil {
		return nil, errors.New("commerce is required")
	}
	if kv == nil {
		return nil, errors.New("store is required")
	}
	if disp == nil {
		return nil, errors.New("dispatcher is required")
	}
	if m == nil {
		return nil, errors.New("metrics are required")
	}

	mgr := &Manager{
		commerce:   store,
		identity:   identity.New(kv),
		ledger:     storage.NewTransactionLedger(kv),
		dispatcher: disp,
		metrics:    m,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr, nil
}

// Start launches the background loops: event delivery and the transaction
// observation stream. On the very first launch of this installation it also
// queues a download event. Start must be called at most once.
func (m *Manager) Start(ctx context.Context) error {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		return errors.New("already started")
	}

	userID, firstLaunch, err := m.identity.GetOrCreate(ctx)
	if err != nil {
		// Identity failure degrades the download log, not the SDK.
		m.logger.Warn("resolving user identity failed", "error", err)
	} else if firstLaunch {
		m.dispatcher.EnqueueDownload(userID)
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	m.cancel = cancel
	m.group = group

	obs := observer.New(
		m.commerce.Updates(groupCtx),
		m, m.ledger, m.dispatcher, m.commerce, m,
		m.metrics,
		observer.WithLogger(m.logger),
	)

	group.Go(func() error { return m.dispatcher.Run(groupCtx) })
	group.Go(func() error { return obs.Run(groupCtx) })
	group.Go(func() error {
		m.RefreshSubscription(groupCtx)
		return nil
	})

	return nil
}

// Close stops the background loops and waits for them to drain.
func (m *Manager) Close() error {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	err := m.group.Wait()
	m.cancel = nil
	m.group = nil
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// SetTrackedProductIDs replaces the tracked catalog. Takes effect on the next
// FetchProducts or entitlement refresh.
func (m *Manager) SetTrackedProductIDs(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trackedIDs = append([]string(nil), ids...)
}

func (m *Manager) tracked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.trackedIDs...)
}

// FetchProducts loads the tracked products from the store and publishes them
// to the observable state.
func (m *Manager) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	products, err := m.commerce.Products(ctx, m.tracked())
	if err != nil {
		m.logger.Error("fetching products failed", "error", err)
		return nil, err
	}

	m.setState(func(s *State) {
		s.Products = append([]domain.Product(nil), products...)
	})
	return products, nil
}

// Product looks a product up in the last-fetched catalog.
func (m *Manager) Product(id string) (domain.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Purchase drives one purchase attempt. A verified or unverified transaction
// is finished, classified and queued for reporting, and the product is
// returned. Pending and cancelled attempts return nil without touching the
// error state; an unknown outcome or a store failure sets a user-facing
// error message and returns nil.
func (m *Manager) Purchase(ctx context.Context, product domain.Product) *domain.Product {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.commerce.Purchase(ctx, product)
	if err != nil {
		m.logger.Error("purchase failed", "product_id", product.ID, "error", err)
		m.setError(msgSomethingWentWrong)
		return nil
	}

	switch result.Outcome {
	case domain.OutcomeVerified, domain.OutcomeUnverified:
		if result.Outcome == domain.OutcomeUnverified {
			// Still a sale; the money moved even if the signature did not check
			// out on this device.
			m.logger.Warn("purchased transaction is unverified",
				"transaction_id", result.Transaction.ID, "reason", result.VerificationError)
		}
		m.completePurchase(ctx, product, result.Transaction)
		return &product

	case domain.OutcomePending, domain.OutcomeCancelled:
		return nil

	default:
		m.logger.Error("unexpected purchase outcome", "outcome", string(result.Outcome))
		m.setError(msgPurchaseFailed)
		return nil
	}
}

// completePurchase finishes the transaction and reports it unless the ledger
// marks it as already logged.
func (m *Manager) completePurchase(ctx context.Context, product domain.Product, txn domain.Transaction) {
	if err := m.commerce.Finish(ctx, txn); err != nil {
		m.logger.Warn("finishing transaction failed", "transaction_id", txn.ID, "error", err)
	}

	lastLogged, err := m.ledger.LastLogged(ctx)
	if err != nil {
		m.logger.Error("reading transaction ledger failed", "error", err)
		return
	}

	event, ok := classifier.Classify(txn, product, lastLogged)
	if !ok {
		m.metrics.DuplicatesSkipped.Inc()
		return
	}

	m.dispatcher.EnqueuePurchase(event)
	if err := m.ledger.SetLastLogged(ctx, txn.ID); err != nil {
		m.logger.Error("persisting last logged transaction failed", "error", err)
	}
	// Subscription state is always derived from the entitlement snapshot,
	// never asserted from the purchase outcome.
	m.evaluateEntitlements(ctx)
}

// RestorePurchase syncs with the store and reports whether the user holds an
// active entitlement to a tracked product. The subscription state is updated
// from the same snapshot.
func (m *Manager) RestorePurchase(ctx context.Context) bool {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.commerce.Sync(ctx); err != nil {
		m.logger.Error("store sync failed", "error", err)
		return false
	}
	return m.evaluateEntitlements(ctx)
}

// RefreshSubscription re-derives the subscription state from the current
// entitlement snapshot. Any failure resolves to not subscribed; the next
// refresh recovers.
func (m *Manager) RefreshSubscription(ctx context.Context) {
	m.evaluateEntitlements(ctx)
}

func (m *Manager) evaluateEntitlements(ctx context.Context) bool {
	entitlements, err := m.commerce.CurrentEntitlements(ctx)
	if err != nil {
		m.logger.Error("reading entitlements failed", "error", err)
		m.setState(func(s *State) { s.IsSubscribed = false })
		return false
	}

	subscribed := entitlement.Evaluate(entitlements, m.tracked(), time.Now())
	m.setState(func(s *State) { s.IsSubscribed = subscribed })
	return subscribed
}
