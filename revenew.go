// Package revenew is a client-side SDK that tracks store purchases for an
// app and reports them to a ReveNew analytics backend. It observes the
// store's transaction stream, classifies each sale (first download, trial
// start, conversion, renewal) and ships events over HTTP without ever
// blocking or failing the purchase flow.
package revenew

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"revenew/internal/logclient"
	"revenew/internal/logclient/dispatcher"
	"revenew/internal/metrics"
	"revenew/internal/purchase"
	"revenew/internal/storage"
	"revenew/internal/storage/leveldb"
	"revenew/pkg/commerce"
	"revenew/pkg/domain"
)

// ErrNotFound is returned by a Store when a key has no value. Custom Store
// implementations must return it (or wrap it) for missing keys.
var ErrNotFound = storage.ErrNotFound

// Store persists the SDK's two durable values, the anonymous user id and the
// last logged transaction id. The default is process-local memory; use
// OpenFileStore or a custom implementation to survive restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// State is the SDK's observable state snapshot.
type State = purchase.State

// Config identifies the app and the analytics backend.
type Config struct {
	// AppName is stamped on every outbound event.
	AppName string
	// Host and Port locate the analytics backend.
	Host string
	Port int
	// TrackedProductIDs is the catalog the SDK fetches and evaluates
	// entitlements against. Can be changed later with SetTrackedProductIDs.
	TrackedProductIDs []string
}

type options struct {
	store     Store
	logger    *slog.Logger
	registry  prometheus.Registerer
	queueSize int
}

type Option func(*options)

// WithStore replaces the default in-memory store.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsRegistry registers the SDK's counters on reg instead of the
// default Prometheus registry.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithQueueSize bounds the outbound event queue. Events beyond the bound are
// dropped, never blocked on.
func WithQueueSize(size int) Option {
	return func(o *options) {
		o.queueSize = size
	}
}

// Client is the SDK entry point. Construct with New, call Start once, and
// Close on shutdown.
type Client struct {
	manager *purchase.Manager
}

// New wires the SDK against a commerce implementation. The commerce layer is
// the caller's bridge to the actual store; the SDK never talks to a store
// directly.
func New(cfg Config, store commerce.Commerce, opts ...Option) (*Client, error) {
	if cfg.AppName == "" {
		return nil, errors.New("app name is required")
	}

	o := options{
		store:    storage.NewInMemoryKV(),
		logger:   slog.Default(),
		registry: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logClient, err := logclient.New(cfg.Host, cfg.Port)
	if err != nil {
		return nil, err
	}

	m := metrics.New(o.registry)

	var dispatchOpts []dispatcher.Option
	dispatchOpts = append(dispatchOpts, dispatcher.WithLogger(o.logger))
	if o.queueSize > 0 {
		dispatchOpts = append(dispatchOpts, dispatcher.WithQueueSize(o.queueSize))
	}
	disp := dispatcher.New(logClient, cfg.AppName, m, dispatchOpts...)

	manager, err := purchase.New(store, o.store, disp, m,
		purchase.WithLogger(o.logger),
		purchase.WithTrackedProductIDs(cfg.TrackedProductIDs),
	)
	if err != nil {
		return nil, err
	}

	return &Client{manager: manager}, nil
}

// Start launches the background loops and, on the first launch of this
// installation, reports a download event.
func (c *Client) Start(ctx context.Context) error {
	return c.manager.Start(ctx)
}

// Close stops the background loops.
func (c *Client) Close() error {
	return c.manager.Close()
}

// FetchProducts loads the tracked products from the store.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return c.manager.FetchProducts(ctx)
}

// Purchase drives one purchase attempt and returns the product on a
// completed sale, nil otherwise. Failures surface as a message in the
// observable state, never as a panic or a blocked caller.
func (c *Client) Purchase(ctx context.Context, product domain.Product) *domain.Product {
	return c.manager.Purchase(ctx, product)
}

// RestorePurchase syncs with the store and reports whether an active tracked
// entitlement exists.
func (c *Client) RestorePurchase(ctx context.Context) bool {
	return c.manager.RestorePurchase(ctx)
}

// SetTrackedProductIDs replaces the tracked catalog.
func (c *Client) SetTrackedProductIDs(ids []string) {
	c.manager.SetTrackedProductIDs(ids)
}

// State returns the current observable snapshot.
func (c *Client) State() State {
	return c.manager.State()
}

// Subscribe returns a channel receiving a snapshot after every state change.
func (c *Client) Subscribe() <-chan State {
	return c.manager.Subscribe()
}

// FileStore is a persistent Store backed by an on-disk database.
type FileStore struct {
	db *leveldb.Store
}

// OpenFileStore opens (or creates) a persistent store at path.
func OpenFileStore(path string) (*FileStore, error) {
	db, err := leveldb.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{db: db}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	return s.db.Get(ctx, key)
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.db.Set(ctx, key, value)
}

func (s *FileStore) Close() error {
	return s.db.Close()
}
