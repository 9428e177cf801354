package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/fluxion/internal/store"
	"github.com/alexanderramin/fluxion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetRemove(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	kv := NewSQLiteKVStore(database)

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Remove(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing a missing key is not an error.
	require.NoError(t, kv.Remove(ctx, "k"))
}

func TestKVStore_JSONHelpers(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	kv := NewSQLiteKVStore(database)

	require.NoError(t, store.SetJSON(ctx, kv, store.KeyElapsedSeconds, 125))

	var elapsed int
	ok, err := store.GetJSON(ctx, kv, store.KeyElapsedSeconds, &elapsed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 125, elapsed)
}

func TestKVStore_ListByPrefix(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	kv := NewSQLiteKVStore(database)

	require.NoError(t, kv.Set(ctx, "fluxion-b", "2"))
	require.NoError(t, kv.Set(ctx, "fluxion-a", "1"))
	require.NoError(t, kv.Set(ctx, "other", "3"))
	require.NoError(t, kv.Set(ctx, "fluxion_x", "4"))

	entries, err := kv.List(ctx, "fluxion-")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fluxion-a", entries[0].Key)
	assert.Equal(t, "fluxion-b", entries[1].Key)
	assert.False(t, entries[0].UpdatedAt.IsZero())
}

func TestKVStore_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	tx, err := database.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteKVStore(tx).Set(ctx, "k", "v"))
	require.NoError(t, tx.Rollback())

	_, ok, err := NewSQLiteKVStore(database).Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
