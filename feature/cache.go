package feature

import (
	"context"
	"sync"
	"time"

	"github.com/marketml/scorekit/core"
)

// CachedFeatureService 是 core.FeatureService 的进程内缓存装饰器，采用 LRU 策略。
// 客户画像变化缓慢，短 TTL 缓存即可消化评分高峰对远端特征库的压力。
type CachedFeatureService struct {
	inner   core.FeatureService
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	features   map[string]float64
	expireTime time.Time
	accessTime time.Time
}

// NewCachedFeatureService 创建缓存装饰器。
// maxSize <= 0 时默认 1024，ttl <= 0 时默认 1 分钟。
func NewCachedFeatureService(inner core.FeatureService, maxSize int, ttl time.Duration) *CachedFeatureService {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedFeatureService{
		inner:   inner,
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func (c *CachedFeatureService) Name() string {
	return "cached." + c.inner.Name()
}

func (c *CachedFeatureService) GetClientFeatures(ctx context.Context, clientID string) (map[string]float64, error) {
	if features, ok := c.lookup(clientID); ok {
		return features, nil
	}
	features, err := c.inner.GetClientFeatures(ctx, clientID)
	if err != nil {
		return nil, err
	}
	c.put(clientID, features)
	return features, nil
}

func (c *CachedFeatureService) BatchGetClientFeatures(ctx context.Context, clientIDs []string) (map[string]map[string]float64, error) {
	result := make(map[string]map[string]float64, len(clientIDs))
	missing := make([]string, 0, len(clientIDs))
	for _, id := range clientIDs {
		if features, ok := c.lookup(id); ok {
			result[id] = features
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}
	fetched, err := c.inner.BatchGetClientFeatures(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, features := range fetched {
		c.put(id, features)
		result[id] = features
	}
	return result, nil
}

// Invalidate 删除单个客户的缓存条目（画像更新后调用）。
func (c *CachedFeatureService) Invalidate(clientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, clientID)
}

func (c *CachedFeatureService) Close(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
	return c.inner.Close(ctx)
}

func (c *CachedFeatureService) lookup(clientID string) (map[string]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[clientID]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expireTime) {
		delete(c.entries, clientID)
		return nil, false
	}
	entry.accessTime = time.Now()
	return entry.features, true
}

func (c *CachedFeatureService) put(clientID string, features map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		c.evictLRU()
	}
	now := time.Now()
	c.entries[clientID] = &cacheEntry{
		features:   features,
		expireTime: now.Add(c.ttl),
		accessTime: now,
	}
}

// evictLRU 删除最久未访问的条目。调用方需持有锁。
func (c *CachedFeatureService) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.accessTime.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.accessTime
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

var _ core.FeatureService = (*CachedFeatureService)(nil)
