package sink

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now().UTC()

	require.NoError(t, store.SavePurchase(ctx, PurchaseRecord{AppName: "DemoApp", CurrencyCode: "USD", ReceivedAt: now}))
	require.NoError(t, store.SaveDownload(ctx, DownloadRecord{UserID: "u-1", AppName: "DemoApp", ReceivedAt: now}))

	purchases, err := store.Purchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "DemoApp", purchases[0].AppName)
	assert.NotZero(t, purchases[0].ID)

	downloads, err := store.Downloads(ctx)
	require.NoError(t, err)
	require.Len(t, downloads, 1)
	assert.Equal(t, "u-1", downloads[0].UserID)
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.SavePurchase(ctx, PurchaseRecord{AppName: "DemoApp", CurrencyCode: "USD"})
		}()
	}
	wg.Wait()

	purchases, err := store.Purchases(ctx)
	require.NoError(t, err)
	assert.Len(t, purchases, writers)

	seen := make(map[int64]bool)
	for _, p := range purchases {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
