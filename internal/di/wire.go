//go:build wireinject
// +build wireinject

package di

import (
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/internal/services/upstream"
	"CryptoIntel/pkg/config"
	"CryptoIntel/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Upstream APIs
		ProvideCoinGecko,
		ProvideDexscreener,
		ProvideCryptoCompare,
		wire.Bind(new(drepo.QuoteSource), new(*upstream.CoinGeckoClient)),
		wire.Bind(new(drepo.NewsSource), new(*upstream.CryptoCompareClient)),
		ProvidePriceSource,

		// Infrastructure
		ProvideRedisClient,
		ProvideCache,
		ProvideSQLDB,
		ProvidePostgRESTClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideAlertStore,
		ProvidePortfolioStore,
		ProvideAlertHistory,
		ProvideQueue,
		ProvideAlertPublisher,
		ProvideAlertEventsHandler,
		ProvideKafkaConsumer,

		// Use cases
		ProvideProbabilityUseCase,
		ProvidePulseUseCase,
		ProvideIntelUseCase,
		ProvideSentimentUseCase,
		ProvideWaifuUseCase,
		ProvideNewsUseCase,
		ProvideAlertsUseCase,
		ProvidePortfolioUseCase,
		ProvideAnalyticsUseCase,
		ProvideRiskUseCase,

		// HTTP and application
		ProvideRouter,
		ProvideServerOptions,
		ProvideApp,
	)
	return nil, nil, nil
}
