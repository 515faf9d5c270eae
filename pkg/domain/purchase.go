package domain

// PurchaseOutcome is the terminal state of a single purchase attempt.
type PurchaseOutcome string

const (
	// OutcomeVerified: the purchase succeeded and the transaction verified.
	OutcomeVerified PurchaseOutcome = "verified"
	// OutcomeUnverified: the purchase succeeded but the transaction could not
	// be verified (e.g. a tampered device). Still treated as a sale.
	OutcomeUnverified PurchaseOutcome = "unverified"
	// OutcomePending: waiting on SCA or purchase approval.
	OutcomePending PurchaseOutcome = "pending"
	// OutcomeCancelled: the user backed out.
	OutcomeCancelled PurchaseOutcome = "cancelled"
	// OutcomeUnknown: the store reported a result this SDK does not know.
	OutcomeUnknown PurchaseOutcome = "unknown"
)

// PurchaseResult is what the commerce layer returns for a purchase attempt.
// Transaction is meaningful only for OutcomeVerified and OutcomeUnverified.
type PurchaseResult struct {
	Outcome           PurchaseOutcome
	Transaction       Transaction
	VerificationError string
}

// ClassifiedEvent is a transaction the classifier decided to report, ready to
// be turned into an outbound purchase event.
//
// Invariant: TrialPeriod is non-empty exactly when IsTrial is true.
type ClassifiedEvent struct {
	Product     Product
	Transaction Transaction
	IsTrial     bool
	TrialPeriod string
}
