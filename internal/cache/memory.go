package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/dgraph-io/ristretto/z"

	"github.com/feral-file/ff-ownership/internal/adapter"
)

// generationStripes bounds the generation table. Keys sharing a stripe share a generation.
const generationStripes = 1024

// memoryCache is an in-process cache backed by ristretto. Every entry costs 1,
// so maxCost bounds the number of entries.
type memoryCache struct {
	cache *ristretto.Cache
	json  adapter.JSON

	mu          sync.Mutex
	generations [generationStripes]uint64
}

// NewMemory creates an in-process cache holding at most maxEntries values
func NewMemory(maxEntries int64, json adapter.JSON) (Cache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("max entries must be positive, got %d", maxEntries)
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &memoryCache{cache: c, json: json}, nil
}

func (m *memoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return false, nil
	}

	data, ok := v.([]byte)
	if !ok {
		m.cache.Del(key)
		return false, nil
	}

	if err := m.json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached value %s: %w", key, err)
	}

	return true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := m.json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}

	m.cache.SetWithTTL(key, data, 1, ttl)
	// make the value visible to the next Get
	m.cache.Wait()
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		m.generations[stripe(k)]++
		m.cache.Del(k)
	}
	return nil
}

func (m *memoryCache) Generation(ctx context.Context, key string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[stripe(key)], nil
}

func (m *memoryCache) SetIfGeneration(ctx context.Context, key string, value any, ttl time.Duration, generation uint64) (bool, error) {
	data, err := m.json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode cache value %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generations[stripe(key)] != generation {
		return false, nil
	}
	m.cache.SetWithTTL(key, data, 1, ttl)
	m.cache.Wait()
	return true, nil
}

func stripe(key string) uint64 {
	h, _ := z.KeyToHash(key)
	return h % generationStripes
}
