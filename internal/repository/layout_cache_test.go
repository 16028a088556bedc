package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLayoutCacheFirstClaimWins(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLayoutCache()

	const n = 32
	got := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed, err := c.Claim(ctx, "s1", "t1", int64(i+1))
			assert.NoError(t, err)
			got[i] = seed
		}(i)
	}
	wg.Wait()

	stored, ok, err := c.Get(ctx, "s1", "t1")
	require.NoError(t, err)
	require.True(t, ok)
	for _, seed := range got {
		assert.Equal(t, stored, seed)
	}
}

func TestMemoryLayoutCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryLayoutCache()

	seed, err := c.Claim(ctx, "s1", "t1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seed)
	_, err = c.Claim(ctx, "s2", "t1", 8)
	require.NoError(t, err)
	_, err = c.Claim(ctx, "s1", "t2", 9)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "s1", "t1"))
	seed, err = c.Claim(ctx, "s1", "t1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), seed, "a finished attempt gets a fresh layout")

	require.NoError(t, c.DeleteTest(ctx, "t1"))
	_, ok, _ := c.Get(ctx, "s2", "t1")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "s1", "t2")
	assert.True(t, ok)
}

func TestLayoutKey(t *testing.T) {
	assert.Equal(t, "attempt:layout:t1:s1", layoutKey("s1", "t1"))
}
