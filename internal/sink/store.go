package sink

import "context"

// RecordStore persists received events. Implementations: in-memory for tests
// and development, Postgres for a longer-lived sink.
type RecordStore interface {
	SavePurchase(ctx context.Context, record PurchaseRecord) error
	SaveDownload(ctx context.Context, record DownloadRecord) error
	Purchases(ctx context.Context) ([]PurchaseRecord, error)
	Downloads(ctx context.Context) ([]DownloadRecord, error)
}
