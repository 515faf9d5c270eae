// Package commerce defines the collaborator interface the embedding
// application implements on top of its platform's store APIs. The SDK never
// talks to a store directly; it consumes the verified-transaction feed and
// catalog this interface provides.
package commerce

import (
	"context"

	"revenew/pkg/domain"
)

//go:generate mockgen -source=commerce.go -destination=mocks/commerce_mock.go -package=mocks Commerce

// Commerce is the store-facing surface of the embedding application.
//
// Updates must deliver transaction updates in store order for the lifetime of
// the process; the SDK processes them strictly sequentially. Finish
// acknowledges a transaction with the store and must be independent of any
// reporting outcome.
type Commerce interface {
	// Products fetches the catalog entries for the given product ids.
	Products(ctx context.Context, ids []string) ([]domain.Product, error)

	// Updates returns the live stream of transaction updates. The channel is
	// closed when the commerce layer shuts down.
	Updates(ctx context.Context) <-chan domain.TransactionUpdate

	// CurrentEntitlements returns a snapshot of the verified transactions the
	// user is currently entitled to.
	CurrentEntitlements(ctx context.Context) ([]domain.Transaction, error)

	// Purchase runs the platform purchase flow for the product.
	Purchase(ctx context.Context, product domain.Product) (domain.PurchaseResult, error)

	// Sync forces a refresh of transaction state with the store.
	Sync(ctx context.Context) error

	// Finish acknowledges the transaction with the store.
	Finish(ctx context.Context, txn domain.Transaction) error
}
