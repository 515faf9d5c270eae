// Package classifier holds the pure decision logic that maps a store
// transaction to a reportable event. It has no I/O; the observation loop and
// the purchase flow both call into it.
package classifier

import (
	"time"

	"revenew/pkg/domain"
)

// trialWindow bounds the gap between a transaction's original purchase date
// and its purchase date under which the transaction is considered the first
// of its subscription group. Only that first transaction can be a trial
// start; renewals carry the group's original date and fall far outside the
// window.
//
// This is a heuristic, not a guarantee: for the group's first transaction it
// cannot distinguish a trial start from an immediate conversion to paid. It
// matches what the store exposes without server-side receipt data.
const trialWindow = 60 * time.Second

// Classify decides whether the transaction should be reported and, if so,
// with what trial semantics. lastLoggedID is the single most recently
// reported transaction id; a match means the transaction was already
// reported and ok is false.
func Classify(txn domain.Transaction, product domain.Product, lastLoggedID string) (domain.ClassifiedEvent, bool) {
	if txn.ID == lastLoggedID {
		return domain.ClassifiedEvent{}, false
	}

	event := domain.ClassifiedEvent{
		Product:     product,
		Transaction: txn,
	}

	if offer, ok := product.TrialOffer(); ok && withinTrialWindow(txn) {
		event.IsTrial = true
		event.TrialPeriod = offer.Period.String()
	}

	return event, true
}

func withinTrialWindow(txn domain.Transaction) bool {
	gap := txn.PurchaseDate.Sub(txn.OriginalPurchaseDate)
	if gap < 0 {
		gap = -gap
	}
	return gap < trialWindow
}
