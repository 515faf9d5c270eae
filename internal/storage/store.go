package storage

import "context"

// The SDK persists exactly two scalar values: the device identity and the id
// of the last transaction it reported. Stores are interface-driven so the
// in-memory implementation covers tests and embedders can supply their own
// durable slot without rewiring business code.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Keys for the two persisted slots.
const (
	KeyUserID                = "revenew.user_id"
	KeyLastLoggedTransaction = "revenew.last_logged_transaction"
)
