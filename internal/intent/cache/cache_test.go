package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"intent-workers/internal/common/logger"
	"intent-workers/internal/intent"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, time.Minute, logger.NewNoOpLogger()), mr
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestKey_UsesNormalizedUtterance(t *testing.T) {
	assert.Equal(t, Key("What is 2 plus 3"), Key("  what is 2 PLUS 3 "))
	assert.NotEqual(t, Key("what is 2 plus 3"), Key("what is 2 plus 4"))
	assert.Len(t, Key("x"), len(keyPrefix)+64)
}

func TestProcess_MissThenHit(t *testing.T) {
	cache, mr := newMiniCache(t)
	controller := intent.NewController()
	ctx := context.Background()

	first, hit := cache.Process(ctx, controller, "What is 2 plus 3")
	assert.False(t, hit)
	assert.True(t, mr.Exists(Key("What is 2 plus 3")))
	assert.Equal(t, time.Minute, mr.TTL(Key("What is 2 plus 3")))

	second, hit := cache.Process(ctx, controller, "what is 2 plus 3")
	assert.True(t, hit)
	assert.Equal(t, "what is 2 plus 3", second.Input)

	first.Input = second.Input
	assert.JSONEq(t, toJSON(t, first), toJSON(t, second))
	assert.Equal(t, []string{"2", "3"}, second.IntentAnalysis.ExtractedInfo.Strings("numbers"))
}

func TestGet_ExpiredEntryIsMiss(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()

	cache.Put(ctx, "weather in paris", intent.NewController().ProcessInput("weather in paris"))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "weather in paris")
	assert.False(t, ok)
}

func TestGet_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newMiniCache(t)
	require.NoError(t, mr.Set(Key("hello"), "not json"))

	_, ok := cache.Get(context.Background(), "hello")
	assert.False(t, ok)
}

func TestProcess_RedisFailureFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := New(rdb, time.Minute, logger.NewNoOpLogger())
	controller := intent.NewController()

	key := Key("hello there")
	want := controller.ProcessInput("hello there")

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet(key, `.*`, time.Minute).SetErr(errors.New("connection refused"))

	got, hit := cache.Process(context.Background(), controller, "hello there")
	assert.False(t, hit)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilCache_IsDisabled(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	cache.Put(ctx, "x", intent.Result{})
	_, ok := cache.Get(ctx, "x")
	assert.False(t, ok)

	result, hit := cache.Process(ctx, intent.NewController(), "what is 2 plus 3")
	assert.False(t, hit)
	assert.Equal(t, "calculate", result.IntentAnalysis.Intent)
}
