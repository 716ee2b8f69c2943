package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T) *SQLite {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_LoadMissingKey(t *testing.T) {
	store := setupTestSQLite(t)

	_, err := store.Load(context.Background(), "brewbean_cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_SaveLoadRoundTrip(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()
	blob := []byte(`[{"id":1,"name":"Latte","price":4.5,"quantity":2}]`)

	require.NoError(t, store.Save(ctx, "brewbean_cart", blob))

	got, err := store.Load(ctx, "brewbean_cart")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestSQLite_SaveUpserts(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte("old")))
	require.NoError(t, store.Save(ctx, "k", []byte("new")))

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLite_Delete(t *testing.T) {
	store := setupTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cart.db")
	ctx := context.Background()

	first, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "k", []byte("persisted")))
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}
