package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_MissingKey(t *testing.T) {
	var n int
	ok, err := GetJSON(context.Background(), NewMemory(), KeyElapsedSeconds, &n)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestGetJSON_MalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, KeyElapsedSeconds, "{not json"))

	n := 7
	ok, err := GetJSON(ctx, m, KeyElapsedSeconds, &n)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 7, n, "destination untouched on decode failure")
}

func TestSetJSON_GetJSON(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, SetJSON(ctx, m, KeyTimerPaused, true))

	var paused bool
	ok, err := GetJSON(ctx, m, KeyTimerPaused, &paused)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, paused)
}

func TestMemory_Remove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", "v"))
	require.NoError(t, m.Remove(ctx, "k"))
	require.NoError(t, m.Remove(ctx, "k"), "removing a missing key is not an error")

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, m.Snapshot())
}

func TestIsPersistedKey(t *testing.T) {
	for _, k := range PersistedKeys {
		assert.True(t, IsPersistedKey(k), k)
		assert.Contains(t, k, KeyPrefix)
	}
	assert.False(t, IsPersistedKey("fluxion-theme"))
	assert.False(t, IsPersistedKey(""))
}
