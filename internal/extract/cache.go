package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"smell-bot/internal/model"

	"github.com/golang/groupcache/lru"
)

// CachingExtractor memoizes extraction results keyed by path and content
// hash. Callers always receive fresh copies, so tagging a returned fact never
// leaks into later scans.
type CachingExtractor struct {
	next  Extractor
	cache *lru.Cache
	mu    sync.Mutex // lru.Cache is not safe for concurrent use
}

func NewCachingExtractor(next Extractor, size int) *CachingExtractor {
	return &CachingExtractor{
		next:  next,
		cache: lru.New(size),
	}
}

func (c *CachingExtractor) Language() string {
	return c.next.Language()
}

func (c *CachingExtractor) Extract(ctx context.Context, path string, source []byte) ([]*model.MethodFact, error) {
	key := cacheKey(c.next.Language(), path, source)

	c.mu.Lock()
	cached, ok := c.cache.Get(key)
	c.mu.Unlock()
	if ok {
		return cloneAll(cached.([]*model.MethodFact)), nil
	}

	methods, err := c.next.Extract(ctx, path, source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, cloneAll(methods))
	c.mu.Unlock()

	return methods, nil
}

func (c *CachingExtractor) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func (c *CachingExtractor) Close() {
	if closer, ok := c.next.(interface{ Close() }); ok {
		closer.Close()
	}
}

// WithCache wraps every registered extractor in a CachingExtractor
func (r *Registry) WithCache(size int) {
	if size <= 0 {
		return
	}
	for language, extractor := range r.extractors {
		if _, cached := extractor.(*CachingExtractor); cached {
			continue
		}
		r.extractors[language] = NewCachingExtractor(extractor, size)
	}
}

func cacheKey(language, path string, source []byte) string {
	sum := sha256.Sum256(source)
	return language + ":" + path + ":" + hex.EncodeToString(sum[:])
}

func cloneAll(methods []*model.MethodFact) []*model.MethodFact {
	out := make([]*model.MethodFact, len(methods))
	for i, m := range methods {
		out[i] = m.Clone()
	}
	return out
}
