package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/modules/session"
)

func TestMemoryCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	cache := session.NewMemoryCache()

	got, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := &session.PlayerSession{UserID: "u1", OperatorID: "op1", Balance: 500}
	require.NoError(t, cache.Set(ctx, "c1", sess))

	got, err = cache.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 500.0, got.Balance)

	// mutations on the returned copy do not leak back into the cache
	got.Balance = 0
	again, err := cache.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, again.Balance)

	require.NoError(t, cache.Delete(ctx, "c1"))
	got, err = cache.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
