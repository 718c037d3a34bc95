package usecase

import (
	"context"
	"errors"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	domsvc "CryptoIntel/internal/domain/service"
	"CryptoIntel/pkg/cache"
	xlogger "CryptoIntel/pkg/logger"
)

// upstream is always queried with lang=EN
var newsCacheKey = cache.GenerateKeyWithParams("news", "latest", "en")

// NewsUseCase serves the classified headline feed. It never fails on upstream
// trouble: the curated fallback headlines are returned instead.
type NewsUseCase struct {
	source     drepo.NewsSource
	classifier domsvc.NewsClassifier
	cache      cache.Service
	ttl        time.Duration
	logger     *xlogger.Logger
	now        func() time.Time
}

// NewNewsUseCase builds the use case. A nil cache or a zero ttl disables caching.
func NewNewsUseCase(source drepo.NewsSource, classifier domsvc.NewsClassifier, c cache.Service, ttl time.Duration, logger *xlogger.Logger) *NewsUseCase {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &NewsUseCase{source: source, classifier: classifier, cache: c, ttl: ttl, logger: logger, now: time.Now}
}

func (uc *NewsUseCase) Latest(ctx context.Context, category string, limit int) (*models.NewsFeed, error) {
	if limit < 0 {
		limit = 0
	}
	now := uc.now()

	var items []models.NewsItem
	articles, err := uc.articles(ctx)
	switch {
	case err != nil:
		uc.logger.Warn("news feed unavailable, serving fallback", xlogger.Error(err))
		items = uc.classifier.Fallback(now, limit)
	case len(articles) == 0:
		items = uc.classifier.Fallback(now, limit)
	default:
		n := min(limit, len(articles))
		items = make([]models.NewsItem, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, uc.classifier.Item(i, articles[i]))
		}
	}

	return &models.NewsFeed{
		Category:  category,
		Total:     len(items),
		News:      items,
		Timestamp: now,
	}, nil
}

func (uc *NewsUseCase) articles(ctx context.Context) ([]models.Article, error) {
	if uc.cache != nil && uc.ttl > 0 {
		var cached []models.Article
		err := uc.cache.Get(ctx, newsCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("news cache read failed", xlogger.Error(err))
		}
	}

	articles, err := uc.source.LatestNews(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil && uc.ttl > 0 && len(articles) > 0 {
		if err := uc.cache.Set(ctx, newsCacheKey, articles, uc.ttl); err != nil {
			uc.logger.Warn("news cache write failed", xlogger.Error(err))
		}
	}
	return articles, nil
}
