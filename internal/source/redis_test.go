package source

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwh-dashboard/internal/table"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	_, ok, err := store.Load(ctx, Rendimiento)
	require.NoError(t, err)
	assert.False(t, ok)

	rows := []table.Row{{"nombre_producto": "Jarabe", "total_merma": 20.5}}
	require.NoError(t, store.Save(ctx, Rendimiento, 0, rows, time.Minute))

	got, ok, err := store.Load(ctx, Rendimiento)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rows, got)

	_, ok, err = store.Load(ctx, Costos)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Expires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Costos, 0, []table.Row{}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Load(ctx, Costos)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_InvalidateBumpsVersion(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Costos, 0, []table.Row{{"costo_total": 1.0}}, time.Minute))
	require.NoError(t, store.Invalidate(ctx))

	_, ok, err := store.Load(ctx, Costos)
	require.NoError(t, err)
	assert.False(t, ok)

	ver, err := mr.Get(redisVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", ver)

	current, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)
}

func TestRedisStore_SaveUnderOldVersionIsNotLoaded(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	before, err := store.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Invalidate(ctx))

	require.NoError(t, store.Save(ctx, Costos, before, []table.Row{{"costo_total": 1.0}}, time.Minute))

	_, ok, err := store.Load(ctx, Costos)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Invalidate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Costos, 0, []table.Row{}, time.Minute))
	_, ok, _ := store.Load(ctx, Costos)
	require.True(t, ok)

	require.NoError(t, store.Invalidate(ctx))
	_, ok, _ = store.Load(ctx, Costos)
	assert.False(t, ok)
}

func TestMemoryStore_SaveUnderOldVersionIsDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	before, err := store.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Invalidate(ctx))

	require.NoError(t, store.Save(ctx, Costos, before, []table.Row{{"costo_total": 1.0}}, time.Minute))

	_, ok, _ := store.Load(ctx, Costos)
	assert.False(t, ok)
}
