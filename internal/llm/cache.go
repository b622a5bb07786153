package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache stores generation responses keyed by request hash.
type Cache interface {
	Get(ctx context.Context, key string) (*Response, bool)
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error
	Stats() CacheStats
}

// CacheStats holds cache counters.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int64
}

// MemoryCache is an in-memory cache with TTL expiry and size-bounded
// eviction.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	stats   CacheStats
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache. Non-positive arguments fall
// back to 1000 entries and 24 hours.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	cache := &MemoryCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}

	go cache.cleanup()

	return cache
}

// Get retrieves a cached response.
func (c *MemoryCache) Get(ctx context.Context, key string) (*Response, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		if ok {
			delete(c.entries, key)
		}
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()

	return entry.response, true
}

// Set stores a response. A non-positive ttl uses the cache default.
func (c *MemoryCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(ttl),
	}
	c.stats.Size = int64(len(c.entries))
	return nil
}

// Stats returns cache counters.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// evictOldest removes the entry closest to expiry. Caller holds the lock.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.stats.Size = int64(len(c.entries))
		c.mu.Unlock()
	}
}

// NullCache never stores anything; it is the default when caching is
// disabled.
type NullCache struct{}

func (c *NullCache) Get(ctx context.Context, key string) (*Response, bool) { return nil, false }

func (c *NullCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Stats() CacheStats { return CacheStats{} }

// CreateCache builds a cache from a config string.
func CreateCache(cacheType string, maxSize int, ttl time.Duration) Cache {
	switch cacheType {
	case "memory":
		return NewMemoryCache(maxSize, ttl)
	case "none", "":
		return &NullCache{}
	default:
		log.Warn().Str("type", cacheType).Msg("unknown cache type, caching disabled")
		return &NullCache{}
	}
}

// GenerateCacheKey hashes the request fields that influence the output.
func GenerateCacheKey(req *Request) string {
	keyData := struct {
		Model       string
		Prompt      string
		System      string
		Temperature float64
		TopP        float64
		MaxTokens   int
	}{
		Model:       req.Model,
		Prompt:      req.Prompt,
		System:      req.System,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CachedClient wraps a Client with response caching.
type CachedClient struct {
	client Client
	cache  Cache
	ttl    time.Duration
}

// NewCachedClient wraps client with cache. Non-positive ttl defaults to 24
// hours.
func NewCachedClient(client Client, cache Cache, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedClient{client: client, cache: cache, ttl: ttl}
}

func (c *CachedClient) Name() string { return c.client.Name() }

func (c *CachedClient) Available() bool { return c.client.Available() }

// Generate serves from cache when possible, marking served responses as
// Cached.
func (c *CachedClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	key := GenerateCacheKey(req)

	if cached, ok := c.cache.Get(ctx, key); ok {
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	resp, err := c.client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, resp, c.ttl); err != nil {
		log.Warn().Err(err).Msg("failed to cache response")
	}

	return resp, nil
}

// CacheStats returns the underlying cache counters.
func (c *CachedClient) CacheStats() CacheStats {
	return c.cache.Stats()
}
