package extract

import (
	"context"
	"errors"
	"testing"

	"smell-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct {
	calls int
	err   error
}

func (c *countingExtractor) Language() string { return "fake" }

func (c *countingExtractor) Extract(ctx context.Context, path string, source []byte) ([]*model.MethodFact, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	m := model.NewMethodFact(string(source))
	m.FilePath = path
	return []*model.MethodFact{m}, nil
}

func TestCachingExtractor_HitsReturnCopies(t *testing.T) {
	next := &countingExtractor{}
	cache := NewCachingExtractor(next, 8)
	ctx := context.Background()

	first, err := cache.Extract(ctx, "a.fake", []byte("run"))
	require.NoError(t, err)
	first[0].AddCodeSmell(model.LongMethod)

	second, err := cache.Extract(ctx, "a.fake", []byte("run"))
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "run", second[0].Name)
	assert.Empty(t, second[0].CodeSmells)
	assert.NotSame(t, first[0], second[0])
}

func TestCachingExtractor_KeyIncludesPathAndContent(t *testing.T) {
	next := &countingExtractor{}
	cache := NewCachingExtractor(next, 8)
	ctx := context.Background()

	_, _ = cache.Extract(ctx, "a.fake", []byte("run"))
	_, _ = cache.Extract(ctx, "b.fake", []byte("run"))
	_, _ = cache.Extract(ctx, "a.fake", []byte("stop"))

	assert.Equal(t, 3, next.calls)
	assert.Equal(t, 3, cache.Len())
}

func TestCachingExtractor_Eviction(t *testing.T) {
	next := &countingExtractor{}
	cache := NewCachingExtractor(next, 1)
	ctx := context.Background()

	_, _ = cache.Extract(ctx, "a.fake", []byte("run"))
	_, _ = cache.Extract(ctx, "b.fake", []byte("run"))
	_, _ = cache.Extract(ctx, "a.fake", []byte("run"))

	assert.Equal(t, 3, next.calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCachingExtractor_ErrorsAreNotCached(t *testing.T) {
	next := &countingExtractor{err: errors.New("boom")}
	cache := NewCachingExtractor(next, 8)

	_, err := cache.Extract(context.Background(), "a.fake", []byte("run"))
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestRegistry_WithCache(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&countingExtractor{}, []string{".fake"})
	registry.WithCache(4)
	registry.WithCache(4)

	e, ok := registry.ForPath("x.fake")
	require.True(t, ok)
	cached, isCached := e.(*CachingExtractor)
	require.True(t, isCached)
	_, doubleWrapped := cached.next.(*CachingExtractor)
	assert.False(t, doubleWrapped)
}
