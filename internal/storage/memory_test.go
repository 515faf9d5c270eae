package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewInMemoryKV()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		_, err := kv.Get(ctx, KeyUserID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, KeyUserID, "abc"))
		v, err := kv.Get(ctx, KeyUserID)
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, KeyUserID, "def"))
		v, err := kv.Get(ctx, KeyUserID)
		require.NoError(t, err)
		assert.Equal(t, "def", v)
	})
}

func TestTransactionLedger(t *testing.T) {
	ctx := context.Background()
	ledger := NewTransactionLedger(NewInMemoryKV())

	t.Run("empty ledger reports empty id", func(t *testing.T) {
		id, err := ledger.LastLogged(ctx)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, ledger.SetLastLogged(ctx, "1001"))
		require.NoError(t, ledger.SetLastLogged(ctx, "1002"))
		id, err := ledger.LastLogged(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1002", id)
	})
}
