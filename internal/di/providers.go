package di

import (
	"context"
	"fmt"
	"time"

	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/internal/handler/api"
	internalrepo "CryptoIntel/internal/repository"
	"CryptoIntel/internal/service/ratelimit"
	"CryptoIntel/internal/services/analytics"
	"CryptoIntel/internal/services/pricing"
	"CryptoIntel/internal/services/upstream"
	"CryptoIntel/internal/usecase"
	"CryptoIntel/pkg/cache"
	pkgch "CryptoIntel/pkg/clickhouse"
	"CryptoIntel/pkg/config"
	xhttp "CryptoIntel/pkg/http"
	"CryptoIntel/pkg/http/middleware"
	pkgkafka "CryptoIntel/pkg/kafka"
	applogger "CryptoIntel/pkg/logger"
	"CryptoIntel/pkg/metrics"
	"CryptoIntel/pkg/queue"
	"CryptoIntel/pkg/server"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const alertEventsTable = "alert_events"

// ProvideLogger builds the structured logger from the logging section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

func ProvideCoinGecko(cfg *config.Config, m drepo.Metrics) *upstream.CoinGeckoClient {
	return upstream.NewCoinGeckoClient(cfg, m)
}

func ProvideDexscreener(cfg *config.Config, m drepo.Metrics) *upstream.DexscreenerClient {
	return upstream.NewDexscreenerClient(cfg, m)
}

func ProvideCryptoCompare(cfg *config.Config, m drepo.Metrics) *upstream.CryptoCompareClient {
	return upstream.NewCryptoCompareClient(cfg, m)
}

// ProvidePriceSource routes tokens between Dexscreener and CoinGecko.
func ProvidePriceSource(cfg *config.Config, dex *upstream.DexscreenerClient, catalog drepo.QuoteSource, m drepo.Metrics) drepo.PriceSource {
	return pricing.NewAdapter(cfg, dex, catalog, m)
}

// ProvideRedisClient connects to cache.redis when the cache or the queue needs it. Nil otherwise.
func ProvideRedisClient(cfg *config.Config, l *applogger.Logger) (*redis.Client, func(), error) {
	needed := cfg.Cache.Driver != "memory" || (cfg.Queue.Enabled && !cfg.Kafka.Enabled)
	if !needed {
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Cache.Redis.Addr,
		Password:     cfg.Cache.Redis.Password,
		DB:           cfg.Cache.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  30 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Cache.Redis.Addr, err)
	}
	l.Info("redis connected", applogger.String("addr", cfg.Cache.Redis.Addr))
	return client, func() { _ = client.Close() }, nil
}

// ProvideCache picks the news cache backend.
func ProvideCache(cfg *config.Config, rdb *redis.Client) (cache.Service, func(), error) {
	var c cache.Service
	switch cfg.Cache.Driver {
	case "redis":
		c = cache.NewRedisCacheFromClient(rdb, cfg.Cache.Prefix)
	case "layered":
		c = cache.NewLayeredCache(cache.NewRedisCacheFromClient(rdb, cfg.Cache.Prefix),
			cache.WithLayeredMemorySize(1000),
			cache.WithLayeredMemoryTTL(time.Minute),
		)
	case "memory":
		c = cache.NewMemoryCache(cache.WithMemoryMaxSize(1000))
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
	return c, func() { _ = c.Close() }, nil
}

// ProvideSQLDB opens the Postgres or SQLite store. Nil for the PostgREST driver.
func ProvideSQLDB(cfg *config.Config, l *applogger.Logger) (*sqlx.DB, func(), error) {
	if cfg.Store.Driver == "postgrest" {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := internalrepo.OpenSQL(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.Migrate {
		if err := internalrepo.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	l.Info("sql store ready", applogger.String("driver", cfg.Store.Driver))
	return db, func() { _ = db.Close() }, nil
}

// ProvidePostgRESTClient returns nil unless the PostgREST driver is selected and configured.
func ProvidePostgRESTClient(cfg *config.Config) *internalrepo.PostgRESTClient {
	if cfg.Store.Driver != "postgrest" || cfg.Store.PostgREST.URL == "" || cfg.Store.PostgREST.Key == "" {
		return nil
	}
	return internalrepo.NewPostgRESTClient(cfg.Store.PostgREST.URL, cfg.Store.PostgREST.Key, cfg.Upstream.Timeout)
}

// ProvideAlertStore returns a nil interface when no store is configured,
// which the use case reports as a configuration error per request.
func ProvideAlertStore(db *sqlx.DB, rest *internalrepo.PostgRESTClient) drepo.AlertStore {
	switch {
	case db != nil:
		return internalrepo.NewSQLAlertStore(db)
	case rest != nil:
		return internalrepo.NewPostgRESTAlertStore(rest)
	}
	return nil
}

func ProvidePortfolioStore(db *sqlx.DB, rest *internalrepo.PostgRESTClient) drepo.PortfolioStore {
	switch {
	case db != nil:
		return internalrepo.NewSQLPortfolioStore(db)
	case rest != nil:
		return internalrepo.NewPostgRESTPortfolioStore(rest)
	}
	return nil
}

// ProvideClickHouseClient creates a ClickHouse client when the alert history is enabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideAlertHistory ensures the alert_events table. Nil without ClickHouse.
func ProvideAlertHistory(ch *pkgch.Client, l *applogger.Logger) (drepo.AlertEventStore, error) {
	if ch == nil {
		return nil, nil
	}
	store := internalrepo.NewCHAlertEventStore(ch, alertEventsTable)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer when Kafka is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideQueue builds the Redis queue used for alert events when Kafka is off.
// Without an alert history it only produces.
func ProvideQueue(cfg *config.Config, l *applogger.Logger, rdb *redis.Client, history drepo.AlertEventStore) *queue.RedisQueue {
	if !cfg.Queue.Enabled || cfg.Kafka.Enabled || rdb == nil {
		return nil
	}
	mode := queue.ModeProducerConsumer
	if history == nil {
		mode = queue.ModeProducerOnly
	}
	return queue.NewRedisQueue(l.With(applogger.String("component", "queue")), queue.Config{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rdb, mode, queue.WithKeyPrefix(cfg.Queue.KeyPrefix))
}

// ProvideAlertPublisher selects Kafka, then the Redis queue. Nil when neither is enabled.
// The producer is closed by its own cleanup.
func ProvideAlertPublisher(cfg *config.Config, producer *pkgkafka.Producer, q *queue.RedisQueue) drepo.AlertEventPublisher {
	switch {
	case producer != nil:
		return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertsTopic)
	case q != nil:
		return internalrepo.NewQueueAlertPublisher(q, cfg.Kafka.AlertsTopic)
	}
	return nil
}

// ProvideAlertEventsHandler returns nil without an alert history to write to.
func ProvideAlertEventsHandler(cfg *config.Config, history drepo.AlertEventStore, m drepo.Metrics) *usecase.AlertEventsHandler {
	if history == nil {
		return nil
	}
	return usecase.NewAlertEventsHandler(cfg.Kafka.AlertsTopic, history, m)
}

// ProvideKafkaConsumer creates the alert history consumer. Nil unless Kafka and ClickHouse are both on.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger, h *usecase.AlertEventsHandler) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || h == nil {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l.With(applogger.String("component", "kafka_consumer"))),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NewHookChain(pkgkafka.TraceHook()))
	consumer.RegisterHandler(h)
	return consumer, nil
}

func ProvideProbabilityUseCase(cfg *config.Config, prices drepo.PriceSource) *usecase.ProbabilityUseCase {
	return usecase.NewProbabilityUseCase(prices, analytics.NewProbabilityEstimator(cfg))
}

func ProvidePulseUseCase(prices drepo.PriceSource) *usecase.PulseUseCase {
	return usecase.NewPulseUseCase(prices, analytics.NewPulseDetector())
}

func ProvideIntelUseCase(cfg *config.Config, prices drepo.PriceSource) *usecase.IntelUseCase {
	return usecase.NewIntelUseCase(prices,
		analytics.NewProbabilityEstimator(cfg),
		analytics.NewPulseDetector(),
		analytics.NewIntelComposer(),
	)
}

func ProvideSentimentUseCase(intel *usecase.IntelUseCase) *usecase.SentimentUseCase {
	return usecase.NewSentimentUseCase(intel, analytics.NewSentimentScorer())
}

func ProvideWaifuUseCase(intel *usecase.IntelUseCase) *usecase.WaifuUseCase {
	return usecase.NewWaifuUseCase(intel, analytics.NewPersonaResponder())
}

func ProvideNewsUseCase(cfg *config.Config, source drepo.NewsSource, c cache.Service, l *applogger.Logger) *usecase.NewsUseCase {
	return usecase.NewNewsUseCase(source, analytics.NewNewsClassifier(), c, cfg.News.CacheTTL, l)
}

func ProvideAlertsUseCase(store drepo.AlertStore, quotes drepo.QuoteSource, events drepo.AlertEventPublisher, history drepo.AlertEventStore, m drepo.Metrics, l *applogger.Logger) *usecase.AlertsUseCase {
	return usecase.NewAlertsUseCase(store, quotes, events, history, m, l)
}

func ProvidePortfolioUseCase(store drepo.PortfolioStore, quotes drepo.QuoteSource, l *applogger.Logger) *usecase.PortfolioUseCase {
	return usecase.NewPortfolioUseCase(store, quotes, l)
}

func ProvideAnalyticsUseCase(quotes drepo.QuoteSource, l *applogger.Logger) *usecase.AnalyticsUseCase {
	return usecase.NewAnalyticsUseCase(quotes, analytics.NewTechnicalAnalyzer(), l)
}

func ProvideRiskUseCase() *usecase.RiskUseCase {
	return usecase.NewRiskUseCase(analytics.NewRiskCalculator())
}

// ProvideRouter mounts every endpoint group under server.base_path.
func ProvideRouter(
	cfg *config.Config,
	l *applogger.Logger,
	probability *usecase.ProbabilityUseCase,
	pulse *usecase.PulseUseCase,
	intel *usecase.IntelUseCase,
	sentiment *usecase.SentimentUseCase,
	waifu *usecase.WaifuUseCase,
	news *usecase.NewsUseCase,
	an *usecase.AnalyticsUseCase,
	risk *usecase.RiskUseCase,
	alerts *usecase.AlertsUseCase,
	portfolio *usecase.PortfolioUseCase,
) *api.Router {
	identity := api.Identity{DefaultUserID: cfg.Store.DefaultUserID}
	return api.NewRouter(cfg.Server.BasePath,
		api.NewPipelineEchoHandler(l, probability, pulse, intel, sentiment, waifu),
		api.NewNewsEchoHandler(l, news, cfg.News.DefaultLimit),
		api.NewAnalyticsEchoHandler(l, an, risk),
		api.NewAlertsEchoHandler(l, alerts, identity),
		api.NewPortfolioEchoHandler(l, portfolio, identity),
	)
}

// ProvideServerOptions maps the server, metrics and rate limit sections onto the HTTP server.
func ProvideServerOptions(cfg *config.Config, l *applogger.Logger) []xhttp.ServerOption {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(l.With(applogger.String("component", "http"))),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	if cfg.RateLimit.Enabled {
		lim := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TTL)
		opts = append(opts, xhttp.WithMiddleware(middleware.RateLimit(lim)))
	}
	return opts
}

// ProvideApp attaches the background workers to the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	router *api.Router,
	opts []xhttp.ServerOption,
	consumer *pkgkafka.Consumer,
	q *queue.RedisQueue,
	h *usecase.AlertEventsHandler,
) *server.App {
	app := server.New(cfg, l, router, opts...)
	if consumer != nil {
		app.AddWorker("kafka_consumer", consumer)
	}
	if q != nil {
		if h != nil {
			q.Register(h)
		}
		app.AddWorker("redis_queue", q)
	}
	return app
}
