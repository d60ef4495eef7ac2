package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		_ = c.Close()
	})
	return mr
}

func TestAsideMissThenHit(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Title = "cached title"
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached title", first.Title)

	// Second read must come from Redis, not the fetch func.
	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, func() error {
		t.Fatal("fetch called on a warm cache")
		return nil
	}))
	assert.Equal(t, first, second)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	var dest cachedPost
	err := Aside(ctx, PostKey(1), &dest, PostTTL, func() error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists(PostKey(1)))
}

func TestAsideWithoutClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedPost
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, PostKey(2), &dest, PostTTL, func() error {
			fetches++
			dest.ID = 2
			return nil
		}))
	}
	assert.Equal(t, 2, fetches, "every read should hit the source without Redis")
}

func TestSetJSONAppliesTTL(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListKey(), []cachedPost{{ID: 1}}, PostsListTTL))
	require.True(t, mr.Exists(PostsListKey()))

	mr.FastForward(PostsListTTL + time.Second)
	assert.False(t, mr.Exists(PostsListKey()))
}

func TestInvalidatePostClearsPostAndList(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), cachedPost{ID: 3}, PostTTL))
	require.NoError(t, SetJSON(ctx, PostsListKey(), []cachedPost{{ID: 3}}, PostsListTTL))

	InvalidatePost(ctx, 3)

	assert.False(t, mr.Exists(PostKey(3)))
	assert.False(t, mr.Exists(PostsListKey()))
}

func TestGetJSONMiss(t *testing.T) {
	setupCache(t)

	var dest cachedPost
	found, err := GetJSON(context.Background(), "missing-key", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
