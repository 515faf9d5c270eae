// Package entitlement answers "is the user currently entitled" from an
// entitlement snapshot. The result is derived on every call and never cached:
// the snapshot is the source of truth, not any stored boolean.
package entitlement

import (
	"time"

	"revenew/pkg/domain"
)

// Evaluate reports whether any entitlement covers a tracked product id and is
// still active at now. Active means not revoked and either non-expiring or
// expiring after now. Returns false for an empty snapshot.
func Evaluate(entitlements []domain.Transaction, trackedIDs []string, now time.Time) bool {
	tracked := make(map[string]struct{}, len(trackedIDs))
	for _, id := range trackedIDs {
		tracked[id] = struct{}{}
	}

	for _, txn := range entitlements {
		if _, ok := tracked[txn.ProductID]; !ok {
			continue
		}
		if txn.Revoked() {
			continue
		}
		if txn.ExpirationDate != nil && !txn.ExpirationDate.After(now) {
			continue
		}
		return true
	}
	return false
}
