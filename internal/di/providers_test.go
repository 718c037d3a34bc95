package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CryptoIntel/internal/domain/models"
	internalrepo "CryptoIntel/internal/repository"
	"CryptoIntel/pkg/cache"
	"CryptoIntel/pkg/config"
	xhttp "CryptoIntel/pkg/http"
	applogger "CryptoIntel/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(body))
	require.NoError(t, err)
	return cfg
}

// Registers the Prometheus recorder, so it can only run once per process.
func TestInitializeAppWithSQLite(t *testing.T) {
	cfg := parse(t, `
environment: test
logging:
  level: error
store:
  driver: sqlite
  dsn: ":memory:"
`)
	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	cleanup()
}

func TestOptionalInfrastructureStaysNil(t *testing.T) {
	cfg := parse(t, "environment: test\n")
	l := applogger.Nop()

	rdb, cleanup, err := ProvideRedisClient(cfg, l)
	require.NoError(t, err)
	assert.Nil(t, rdb)
	cleanup()

	db, cleanup, err := ProvideSQLDB(cfg, l)
	require.NoError(t, err)
	assert.Nil(t, db)
	cleanup()

	ch, cleanup, err := ProvideClickHouseClient(cfg)
	require.NoError(t, err)
	assert.Nil(t, ch)
	cleanup()

	history, err := ProvideAlertHistory(ch, l)
	require.NoError(t, err)
	assert.Nil(t, history)

	producer, cleanup, err := ProvideKafkaProducer(cfg)
	require.NoError(t, err)
	assert.Nil(t, producer)
	cleanup()

	assert.Nil(t, ProvideQueue(cfg, l, rdb, history))
	assert.Nil(t, ProvideAlertPublisher(cfg, producer, nil))
	assert.Nil(t, ProvideAlertEventsHandler(cfg, history, nil))

	consumer, err := ProvideKafkaConsumer(cfg, l, nil)
	require.NoError(t, err)
	assert.Nil(t, consumer)
}

func TestStoresWithoutPostgRESTCredentials(t *testing.T) {
	cfg := parse(t, "environment: test\n")
	rest := ProvidePostgRESTClient(cfg)
	assert.Nil(t, rest)
	assert.Nil(t, ProvideAlertStore(nil, rest))
	assert.Nil(t, ProvidePortfolioStore(nil, rest))

	cfg.Store.PostgREST.URL = "https://example.supabase.co"
	cfg.Store.PostgREST.Key = "service-role"
	rest = ProvidePostgRESTClient(cfg)
	require.NotNil(t, rest)
	assert.IsType(t, &internalrepo.PostgRESTAlertStore{}, ProvideAlertStore(nil, rest))
	assert.IsType(t, &internalrepo.PostgRESTPortfolioStore{}, ProvidePortfolioStore(nil, rest))
}

func TestProvideCacheMemory(t *testing.T) {
	cfg := parse(t, "environment: test\n")
	c, cleanup, err := ProvideCache(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, c)
	cleanup()
}

func TestProvideServerOptions(t *testing.T) {
	cfg := parse(t, "environment: test\n")
	base := len(ProvideServerOptions(cfg, applogger.Nop()))

	cfg.RateLimit.Enabled = true
	assert.Len(t, ProvideServerOptions(cfg, applogger.Nop()), base+1)
}

type articleSource struct{ n int }

func (s articleSource) LatestNews(context.Context) ([]models.Article, error) {
	out := make([]models.Article, s.n)
	for i := range out {
		out[i] = models.Article{Title: "Bitcoin rally"}
	}
	return out, nil
}

func TestRouterUsesConfiguredNewsLimit(t *testing.T) {
	cfg := parse(t, `
environment: test
news:
  default_limit: 3
`)
	l := applogger.Nop()
	news := ProvideNewsUseCase(cfg, articleSource{n: 8}, nil, l)
	router := ProvideRouter(cfg, l, nil, nil, nil, nil, nil, news, nil, nil, nil, nil)
	srv := xhttp.NewServer(router, xhttp.WithMetricsPath(""))

	get := func(target string) models.NewsFeed {
		rec := httptest.NewRecorder()
		srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data models.NewsFeed `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body.Data
	}

	base := cfg.Server.BasePath
	assert.Len(t, get(base+"/news").News, 3)
	assert.Len(t, get(base+"/news?limit=5").News, 5)
	assert.Empty(t, get(base+"/news?limit=0").News)
}
