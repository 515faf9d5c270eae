package domain

import "time"

// Environment distinguishes sandbox from production transactions.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Transaction is a single store transaction as handed over by the commerce
// layer. Transaction IDs are store-assigned and monotonic.
type Transaction struct {
	ID        string
	ProductID string
	// PurchaseDate is when this transaction was charged.
	PurchaseDate time.Time
	// OriginalPurchaseDate equals PurchaseDate only for the very first
	// transaction in a subscription group.
	OriginalPurchaseDate time.Time
	// RevocationDate is set when the purchase was refunded or revoked.
	RevocationDate *time.Time
	// ExpirationDate is absent for non-expiring purchases.
	ExpirationDate *time.Time
	// Storefront is the store country code, "-" when unknown.
	Storefront  string
	Environment Environment
}

// Revoked reports whether the transaction has been refunded or revoked.
func (t Transaction) Revoked() bool {
	return t.RevocationDate != nil
}

// IsSandbox reports whether the transaction did not happen in production.
func (t Transaction) IsSandbox() bool {
	return t.Environment != EnvironmentProduction
}

// TransactionUpdate is one item of the commerce layer's live transaction
// stream. Verified carries the platform's cryptographic verification verdict;
// VerificationError holds the reason when it failed.
type TransactionUpdate struct {
	Transaction       Transaction
	Verified          bool
	VerificationError string
}
