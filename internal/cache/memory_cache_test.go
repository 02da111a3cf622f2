package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newMemoryCache(300*time.Second, 10, clock.Now)

	require.NoError(t, c.Set(ctx, "episodes", []int{1, 2, 3}))

	var got []int
	hit, err := c.Get(ctx, "episodes", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int{1, 2, 3}, got)

	clock.now = clock.now.Add(300 * time.Second)
	hit, err = c.Get(ctx, "episodes", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)

	src := map[string]int{"a": 1}
	require.NoError(t, c.Set(ctx, "k", src))
	src["a"] = 99

	got := map[string]int{}
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, 1, got["a"])
}

func TestMemoryCacheBounded(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := newMemoryCache(time.Minute, 3, clock.Now)

	for i := 0; i < 5; i++ {
		clock.now = clock.now.Add(time.Second)
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), i))
	}
	assert.Len(t, c.entries, 3)

	var v int
	hit, _ := c.Get(ctx, "k0", &v)
	assert.False(t, hit, "oldest entry should be evicted")
	hit, _ = c.Get(ctx, "k4", &v)
	assert.True(t, hit)
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)
	require.NoError(t, c.Set(ctx, "episodes", 1))
	require.NoError(t, c.Clear(ctx))

	var v int
	hit, err := c.Get(ctx, "episodes", &v)
	require.NoError(t, err)
	assert.False(t, hit)
}
