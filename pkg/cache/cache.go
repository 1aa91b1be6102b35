// Package cache 提供一个带 TTL 的进程内缓存，用于给行情查询减压。
package cache

import (
	"sync"
	"time"
)

// Cache 通用缓存接口
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
	Clear()
	Size() int
}

// InMemoryCache 内存缓存实现
type InMemoryCache[K comparable, V any] struct {
	items      map[K]*cacheItem[V]
	mu         sync.RWMutex
	defaultTTL time.Duration
}

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// NewInMemoryCache 创建新的内存缓存
func NewInMemoryCache[K comparable, V any](defaultTTL time.Duration) *InMemoryCache[K, V] {
	c := &InMemoryCache[K, V]{
		items:      make(map[K]*cacheItem[V]),
		defaultTTL: defaultTTL,
	}
	go c.startCleanup()
	return c
}

// Get 获取缓存值
func (c *InMemoryCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		go c.Delete(key)
		var zero V
		return zero, false
	}
	return item.value, true
}

// Set 设置缓存值，ttl 为 0 时使用默认 TTL
func (c *InMemoryCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	c.items[key] = &cacheItem[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete 删除缓存项
func (c *InMemoryCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear 清空缓存
func (c *InMemoryCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*cacheItem[V])
}

// Size 获取缓存大小
func (c *InMemoryCache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *InMemoryCache[K, V]) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *InMemoryCache[K, V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

// QuoteCache 行情快照缓存。五档行情变化快，只做秒级缓存挡住重复查询。
type QuoteCache struct {
	cache *InMemoryCache[string, map[string]string]
}

// NewQuoteCache 创建新的行情缓存
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &QuoteCache{
		cache: NewInMemoryCache[string, map[string]string](ttl),
	}
}

// Get 获取某只证券的行情快照
func (qc *QuoteCache) Get(stockCode string) (map[string]string, bool) {
	return qc.cache.Get(stockCode)
}

// Set 写入行情快照
func (qc *QuoteCache) Set(stockCode string, quote map[string]string) {
	qc.cache.Set(stockCode, quote, 0)
}
