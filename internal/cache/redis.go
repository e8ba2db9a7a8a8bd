package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feral-file/ff-ownership/internal/adapter"
)

// generationTTL outlives any load, so an expired generation key never matches a stale read
const generationTTL = 24 * time.Hour

// setIfGenerationScript stores ARGV[1] at KEYS[1] for ARGV[3] milliseconds when the
// generation at KEYS[2] still equals ARGV[2]
const setIfGenerationScript = `
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`

// deleteScript removes each value key and advances the generation key that follows it
const deleteScript = `
for i = 1, #KEYS, 2 do
	redis.call('DEL', KEYS[i])
	redis.call('INCR', KEYS[i + 1])
	redis.call('PEXPIRE', KEYS[i + 1], ARGV[1])
end
return #KEYS / 2
`

// redisCache is a cache shared between API replicas
type redisCache struct {
	client adapter.RedisClient
	json   adapter.JSON
	prefix string
}

// NewRedis creates a distributed cache. prefix namespaces every key.
func NewRedis(client adapter.RedisClient, json adapter.JSON, prefix string) Cache {
	return &redisCache{client: client, json: json, prefix: prefix}
}

func (r *redisCache) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisCache) generationKey(k string) string {
	return r.key("gen:" + k)
}

func (r *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cached value %s: %w", key, err)
	}

	if err := r.json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value %s: %w", key, err)
	}

	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := r.json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}

	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached value %s: %w", key, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, r.key(k), r.generationKey(k))
	}

	if err := r.client.Eval(ctx, deleteScript, pairs, generationTTL.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to delete cached values: %w", err)
	}

	return nil
}

func (r *redisCache) Generation(ctx context.Context, key string) (uint64, error) {
	generation, err := r.client.Get(ctx, r.generationKey(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation %s: %w", key, err)
	}
	return generation, nil
}

func (r *redisCache) SetIfGeneration(ctx context.Context, key string, value any, ttl time.Duration, generation uint64) (bool, error) {
	data, err := r.json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}

	stored, err := r.client.Eval(ctx, setIfGenerationScript,
		[]string{r.key(key), r.generationKey(key)},
		data, strconv.FormatUint(generation, 10), ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to set cached value %s: %w", key, err)
	}

	return stored == 1, nil
}
