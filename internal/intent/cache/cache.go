// internal/intent/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
	"intent-workers/internal/intent"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "intent:result:"

// Cache stores pipeline results keyed by the normalized utterance. The
// pipeline is deterministic, so a hit is indistinguishable from a fresh run
// apart from the echoed input. A nil *Cache is a valid, disabled cache.
type Cache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func New(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "intent-cache"}),
	}
}

// Key is the Redis key for utterance.
func Key(utterance string) string {
	sum := sha256.Sum256([]byte(intent.Normalize(utterance)))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns a cached result. Redis failures are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, utterance string) (intent.Result, bool) {
	if c == nil {
		return intent.Result{}, false
	}

	raw, err := c.rdb.Get(ctx, Key(utterance)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			c.logger.Warn("Result cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return intent.Result{}, false
	}

	var result intent.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("Discarding undecodable cache entry", map[string]interface{}{"error": err.Error()})
		return intent.Result{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()

	result.Input = utterance
	return result, true
}

// Put stores result. Failures are logged and otherwise ignored.
func (c *Cache) Put(ctx context.Context, utterance string, result intent.Result) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Result not cacheable", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.rdb.Set(ctx, Key(utterance), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Result cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// Process returns the cached result for utterance or runs the controller and
// caches what it produced. The second return value reports a cache hit.
func (c *Cache) Process(ctx context.Context, controller *intent.Controller, utterance string) (intent.Result, bool) {
	if result, ok := c.Get(ctx, utterance); ok {
		return result, true
	}
	result := controller.ProcessInput(utterance)
	c.Put(ctx, utterance, result)
	return result, false
}
