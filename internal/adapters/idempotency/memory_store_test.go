package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReserveCompleteLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	resp, err := store.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp, "unknown keys load as nil")

	ok, err := store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must lose")

	_, err = store.Load(ctx, "k1")
	assert.ErrorIs(t, err, repositories.ErrIdempotencyKeyPending)

	require.NoError(t, store.Complete(ctx, "k1", repositories.CachedResponse{
		StatusCode:  201,
		ContentType: "application/json",
		Body:        []byte(`{"invoiceNo":"INV-00001"}`),
	}, time.Minute))

	resp, err = store.Load(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.StatusCode)
	assert.JSONEq(t, `{"invoiceNo":"INV-00001"}`, string(resp.Body))
}

func TestMemoryStore_ReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ok, _ := store.Reserve(ctx, "k", time.Minute)
	require.True(t, ok)
	require.NoError(t, store.Release(ctx, "k"))

	ok, _ = store.Reserve(ctx, "k", time.Minute)
	assert.True(t, ok, "released keys can be reserved again")

	now = now.Add(2 * time.Minute)
	resp, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, resp, "expired reservations are forgotten")
}
