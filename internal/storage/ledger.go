package storage

import (
	"context"
	"errors"
	"fmt"
)

// TransactionLedger wraps the last-logged-transaction slot. It is a single
// scalar, not a seen-set: the SDK only guarantees it never reports the same
// transaction id twice in a row. That is deliberately narrow; the observation
// loop's strictly sequential processing is what keeps it safe from lost
// updates.
type TransactionLedger struct {
	kv KV
}

func NewTransactionLedger(kv KV) *TransactionLedger {
	return &TransactionLedger{kv: kv}
}

// LastLogged returns the most recently reported transaction id, or "" when
// nothing was reported yet.
func (l *TransactionLedger) LastLogged(ctx context.Context) (string, error) {
	id, err := l.kv.Get(ctx, KeyLastLoggedTransaction)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read last logged transaction: %w", err)
	}
	return id, nil
}

// SetLastLogged persists the transaction id that was just reported.
func (l *TransactionLedger) SetLastLogged(ctx context.Context, id string) error {
	if err := l.kv.Set(ctx, KeyLastLoggedTransaction, id); err != nil {
		return fmt.Errorf("persist last logged transaction: %w", err)
	}
	return nil
}
