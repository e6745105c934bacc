package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	r := NewRedis(mr.Addr(), "", 0)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestRedisGetSetRemove(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	require.NoError(t, r.Ping(ctx))

	_, err := r.Get(ctx, "k")
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, r.Set(ctx, "k", "v"))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.True(t, mr.Exists("jobportal:k"))

	require.NoError(t, r.Remove(ctx, "k"))
	_, err = r.Get(ctx, "k")
	assert.Equal(t, ErrNotFound, err)
}

func TestRedisListRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)
	p := Partition(r, "sess1")

	require.NoError(t, WriteList(ctx, p, KeySavedJobs, []item{{7, "seven"}}))
	assert.Equal(t, []item{{7, "seven"}}, ReadList[item](ctx, p, KeySavedJobs))
}

func TestRedisUnavailableReadsEmpty(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	r := NewRedis(mr.Addr(), "", 0)
	defer r.Close()
	require.NoError(t, WriteList(ctx, r, KeySavedJobs, []item{{1, "a"}}))

	mr.Close()

	assert.Empty(t, ReadList[item](ctx, r, KeySavedJobs))
}
