package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *Redis {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client)
}

func TestRedis_LoadMissingKey(t *testing.T) {
	store := setupTestRedis(t)

	_, err := store.Load(context.Background(), "brewbean_cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_SaveLoadRoundTrip(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()
	blob := []byte(`[{"id":1,"name":"Latte","price":4.5,"quantity":2}]`)

	require.NoError(t, store.Save(ctx, "brewbean_cart", blob))

	got, err := store.Load(ctx, "brewbean_cart")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestRedis_SaveOverwrites(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte("old")))
	require.NoError(t, store.Save(ctx, "k", []byte("new")))

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestRedis_Delete(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_DeleteMissingKeyIsNoError(t *testing.T) {
	store := setupTestRedis(t)

	assert.NoError(t, store.Delete(context.Background(), "absent"))
}
