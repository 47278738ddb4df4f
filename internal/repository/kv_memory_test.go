package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webmall/storesync/internal/repository"
)

func TestMemoryKV(t *testing.T) {
	ctx := t.Context()
	kv := repository.NewMemoryKV()
	key := gofakeit.UUID()

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, key, "value"))

	value, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, kv.Set(ctx, key, "other"))
	value, _, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "other", value)

	require.NoError(t, kv.Delete(ctx, key))
	_, ok, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.EqualError(t, kv.Set(ctx, "", "x"), "key is empty")
	_, _, err = kv.Get(ctx, "")
	require.EqualError(t, err, "key is empty")
	require.EqualError(t, kv.Delete(ctx, ""), "key is empty")
}
