package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoIntel/internal/domain/models"
	"CryptoIntel/internal/services/analytics"
	"CryptoIntel/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{Title: "Bitcoin rally", Body: "body", PublishedAt: fixedNow}
	}
	return out
}

func TestNewsLimitsArticles(t *testing.T) {
	src := &fakeNews{articles: articles(5)}
	uc := NewNewsUseCase(src, analytics.NewNewsClassifier(), nil, 0, nil)
	uc.now = clock

	feed, err := uc.Latest(context.Background(), "general", 2)
	require.NoError(t, err)
	assert.Equal(t, "general", feed.Category)
	assert.Equal(t, 2, feed.Total)
	require.Len(t, feed.News, 2)
	assert.Equal(t, "1", feed.News[1].ID)
	assert.Equal(t, "positive", feed.News[0].Sentiment)
}

func TestNewsFallsBackOnUpstreamError(t *testing.T) {
	uc := NewNewsUseCase(&fakeNews{err: errors.New("boom")}, analytics.NewNewsClassifier(), nil, 0, nil)
	uc.now = clock

	feed, err := uc.Latest(context.Background(), "general", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, feed.Total)
	assert.Equal(t, fixedNow.Add(-time.Hour), feed.News[0].PublishedAt)
}

func TestNewsFallsBackOnEmptyFeed(t *testing.T) {
	uc := NewNewsUseCase(&fakeNews{}, analytics.NewNewsClassifier(), nil, 0, nil)
	feed, err := uc.Latest(context.Background(), "general", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Total)
	assert.Equal(t, "Bitcoin ETF Inflows Reach Record Highs", feed.News[0].Title)
}

func TestNewsCachesArticles(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()

	src := &fakeNews{articles: articles(3)}
	uc := NewNewsUseCase(src, analytics.NewNewsClassifier(), mem, time.Minute, nil)

	first, err := uc.Latest(context.Background(), "general", 10)
	require.NoError(t, err)
	second, err := uc.Latest(context.Background(), "general", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first.Total, second.Total)
	assert.True(t, second.News[0].PublishedAt.Equal(fixedNow))
}

func TestNewsZeroTTLSkipsCache(t *testing.T) {
	mem := cache.NewMemoryCache()
	defer mem.Close()

	src := &fakeNews{articles: articles(1)}
	uc := NewNewsUseCase(src, analytics.NewNewsClassifier(), mem, 0, nil)
	_, _ = uc.Latest(context.Background(), "general", 10)
	_, _ = uc.Latest(context.Background(), "general", 10)
	assert.Equal(t, 2, src.calls)
}

func TestNewsZeroLimitReturnsEmptyList(t *testing.T) {
	uc := NewNewsUseCase(&fakeNews{articles: articles(5)}, analytics.NewNewsClassifier(), nil, 0, nil)
	feed, err := uc.Latest(context.Background(), "general", 0)
	require.NoError(t, err)
	assert.Zero(t, feed.Total)
	assert.NotNil(t, feed.News)
	assert.Empty(t, feed.News)
}
