package utils

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	DB "Backend-Formcraft/src/database"

	"github.com/redis/go-redis/v9"
)

const (
	responseCountTTL = 10 * time.Minute
	// outlives any cached count so a bumped generation can't reset under it
	responseGenTTL = 24 * time.Hour
)

// ensureClient returns the shared Redis client managed by the database package.
// nil means redis is not configured and callers skip caching.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// ResponseCountCache keeps per-form response counts in redis.
// Without a client every call is a miss / no-op (dev mode).
type ResponseCountCache struct {
	client *redis.Client
}

// NewResponseCountCache uses the shared client when client is nil.
func NewResponseCountCache(client *redis.Client) *ResponseCountCache {
	if client == nil {
		client = ensureClient()
	}
	return &ResponseCountCache{client: client}
}

func responseCountKey(formID string) string {
	return fmt.Sprintf("form:responses:count:%s", formID)
}

func responseGenKey(formID string) string {
	return fmt.Sprintf("form:responses:gen:%s", formID)
}

// setCountIfGen writes the count only while the generation still matches.
var setCountIfGen = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// GetCount returns the cached count and the generation a later SetCount must
// present. The generation is returned on a miss too.
func (c *ResponseCountCache) GetCount(ctx context.Context, formID string) (int64, string, bool) {
	if c.client == nil {
		// ไม่มี Redis ใน dev mode - ข้าม
		return 0, "", false
	}
	vals, err := c.client.MGet(ctx, responseCountKey(formID), responseGenKey(formID)).Result()
	if err != nil {
		log.Printf("⚠️ [CountCache] get form=%s: %v", formID, err)
		return 0, "", false
	}
	gen := "0"
	if g, ok := vals[1].(string); ok {
		gen = g
	}
	raw, ok := vals[0].(string)
	if !ok {
		return 0, gen, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, gen, false
	}
	return n, gen, true
}

func (c *ResponseCountCache) SetCount(ctx context.Context, formID string, count int64, gen string) {
	if c.client == nil || gen == "" {
		return
	}
	keys := []string{responseCountKey(formID), responseGenKey(formID)}
	if err := setCountIfGen.Run(ctx, c.client, keys, gen, count, responseCountTTL.Milliseconds()).Err(); err != nil {
		log.Printf("⚠️ [CountCache] set form=%s: %v", formID, err)
	}
}

// Invalidate bumps the generation and drops the cached count.
func (c *ResponseCountCache) Invalidate(ctx context.Context, formID string) {
	if c.client == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, responseGenKey(formID))
		pipe.Expire(ctx, responseGenKey(formID), responseGenTTL)
		pipe.Del(ctx, responseCountKey(formID))
		return nil
	})
	if err != nil {
		log.Printf("⚠️ [CountCache] invalidate form=%s: %v", formID, err)
	}
}
