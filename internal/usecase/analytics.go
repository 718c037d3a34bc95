package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	domsvc "CryptoIntel/internal/domain/service"
	"CryptoIntel/internal/services/analytics"
	xlogger "CryptoIntel/pkg/logger"
)

// AnalyticsUseCase derives technical indicators from the 24h catalog quote.
type AnalyticsUseCase struct {
	quotes   drepo.QuoteSource
	analyzer domsvc.TechnicalAnalyzer
	logger   *xlogger.Logger
	now      func() time.Time
}

func NewAnalyticsUseCase(quotes drepo.QuoteSource, analyzer domsvc.TechnicalAnalyzer, logger *xlogger.Logger) *AnalyticsUseCase {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &AnalyticsUseCase{quotes: quotes, analyzer: analyzer, logger: logger, now: time.Now}
}

func (uc *AnalyticsUseCase) Report(ctx context.Context, token, indicator string) (*models.AnalyticsReport, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	if indicator == "" {
		indicator = models.IndicatorAll
	}
	q, err := uc.quotes.Quote(ctx, token, true)
	if err != nil {
		uc.logger.Warn("analytics quote failed", xlogger.String("token", token), xlogger.Error(err))
		return nil, models.UpstreamUnavailable("Unable to fetch price data", err)
	}
	md := analytics.MarketDataFromQuote(q)
	ind := uc.analyzer.Indicators(md)
	return &models.AnalyticsReport{
		Token:      token,
		Indicators: ind.Select(indicator),
		PriceData:  md,
		Timestamp:  uc.now(),
	}, nil
}
