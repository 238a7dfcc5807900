package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

func newTestIndex(t *testing.T, opts ...Option) (*OrderIndex, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewOrderIndex(rdb, opts...), mr
}

func TestOrderIndex_PutLookupRemove(t *testing.T) {
	idx, mr := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Put(ctx, "o-1", "l-1"))
	require.NoError(t, idx.Put(ctx, "o-2", "l-1"))
	assert.True(t, mr.Exists("bizrecipe:order-index:o-1"))

	listingID, err := idx.Lookup(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "l-1", listingID)

	require.NoError(t, idx.Remove(ctx, "o-1", "o-2"))
	_, err = idx.Lookup(ctx, "o-1")
	require.ErrorIs(t, err, ports.ErrIndexMiss)
	assert.False(t, mr.Exists("bizrecipe:order-index:o-2"))
}

func TestOrderIndex_TTLAndPrefix(t *testing.T) {
	idx, mr := newTestIndex(t, WithKeyPrefix("test:"), WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, idx.Put(ctx, "o-1", "l-1"))
	assert.Equal(t, time.Minute, mr.TTL("test:o-1"))

	mr.FastForward(2 * time.Minute)
	_, err := idx.Lookup(ctx, "o-1")
	require.ErrorIs(t, err, ports.ErrIndexMiss)
}

func TestOrderIndex_ServerErrorIsNotAMiss(t *testing.T) {
	idx, mr := newTestIndex(t)
	mr.Close()

	_, err := idx.Lookup(context.Background(), "o-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrIndexMiss)
}

func TestOrderIndex_Unconfigured(t *testing.T) {
	var idx *OrderIndex
	require.Error(t, idx.Put(context.Background(), "o", "l"))
}
