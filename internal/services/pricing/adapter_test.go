package pricing

import (
	"context"
	"errors"
	"testing"

	"CryptoIntel/internal/domain/models"
	"CryptoIntel/internal/services/upstream"
	"CryptoIntel/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPairs struct {
	pairs []upstream.DexPair
	err   error
	calls int
}

func (s *stubPairs) TokenPairs(context.Context, string) ([]upstream.DexPair, error) {
	s.calls++
	return s.pairs, s.err
}

type stubQuotes struct {
	quote *models.Quote
	err   error
	calls int
}

func (s *stubQuotes) Quote(context.Context, string, bool) (*models.Quote, error) {
	s.calls++
	return s.quote, s.err
}

func newTestAdapter(p *stubPairs, q *stubQuotes) *Adapter {
	cfg := &config.Config{}
	cfg.Pipeline.DexTokenMinLength = 20
	cfg.Pipeline.CatalogExtrapolation = 0.002
	return NewAdapter(cfg, p, q, nil)
}

func pair(price string, liq, m5 float64, addr string) upstream.DexPair {
	var p upstream.DexPair
	p.PriceUSD = price
	p.Liquidity.USD = liq
	p.PriceChange.M5 = m5
	p.PairAddress = addr
	return p
}

func TestIsDexToken(t *testing.T) {
	assert.True(t, IsDexToken("0x1234", 20))
	assert.True(t, IsDexToken("So11111111111111111111111111111111111111112", 20))
	assert.False(t, IsDexToken("bitcoin", 20))
	assert.False(t, IsDexToken("aaaaaaaaaaaaaaaaaaaa", 20)) // exactly 20
}

func TestDexRoutePicksDeepestPair(t *testing.T) {
	p := &stubPairs{pairs: []upstream.DexPair{
		pair("1.0", 100, 0, "shallow"),
		pair("2.0", 500, 10, "deep"),
		pair("3.0", 500, 0, "deep-tie"),
	}}
	q := &stubQuotes{}
	snap, err := newTestAdapter(p, q).FetchPriceSnapshot(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, models.RouteDex, snap.Route)
	assert.Equal(t, "deep", snap.Metadata.PairAddress)
	assert.Equal(t, 2.0, snap.Current)
	assert.InDelta(t, 2.0/1.1, snap.PreviousAt5m, 1e-12)
	assert.Equal(t, "0xabc", snap.Metadata.TokenAddress)
	require.NotNil(t, snap.Metadata.Liquidity)
	assert.Equal(t, 500.0, *snap.Metadata.Liquidity)
	assert.Equal(t, 0, q.calls)
}

func TestDexRouteNoPairs(t *testing.T) {
	_, err := newTestAdapter(&stubPairs{}, &stubQuotes{}).FetchPriceSnapshot(context.Background(), "0xabc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNoPairsFound))
	assert.Equal(t, "No pairs found for this token", err.Error())
}

func TestDexRouteMissingAndBadPrice(t *testing.T) {
	snap, err := newTestAdapter(&stubPairs{pairs: []upstream.DexPair{pair("", 1, 0, "x")}}, &stubQuotes{}).
		FetchPriceSnapshot(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.Current)
	assert.Equal(t, 0.0, snap.PreviousAt5m)

	_, err = newTestAdapter(&stubPairs{pairs: []upstream.DexPair{pair("abc", 1, 0, "x")}}, &stubQuotes{}).
		FetchPriceSnapshot(context.Background(), "0xabc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUpstreamUnavailable))
}

func TestDexRouteMinusHundredPercentStaysFinite(t *testing.T) {
	snap, err := newTestAdapter(&stubPairs{pairs: []upstream.DexPair{pair("1", 1, -100, "x")}}, &stubQuotes{}).
		FetchPriceSnapshot(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.PreviousAt5m)
}

func TestCatalogRoute(t *testing.T) {
	q := &stubQuotes{quote: &models.Quote{ID: "bitcoin", Price: 100, Change24h: 10, Volume24h: 42}}
	p := &stubPairs{}
	snap, err := newTestAdapter(p, q).FetchPriceSnapshot(context.Background(), "bitcoin")
	require.NoError(t, err)

	assert.Equal(t, models.RouteCatalog, snap.Route)
	assert.Equal(t, 100.0, snap.Current)
	assert.InDelta(t, 100/(1+10*0.002/100), snap.PreviousAt5m, 1e-9)
	assert.Equal(t, "bitcoin", snap.Metadata.CoingeckoID)
	assert.Equal(t, 42.0, snap.Metadata.Volume24h)
	require.NotNil(t, snap.Metadata.PriceChange24h)
	assert.Equal(t, 10.0, *snap.Metadata.PriceChange24h)
	assert.Nil(t, snap.Metadata.PriceChange)
	assert.Equal(t, 0, p.calls)
}

func TestCatalogRoutePropagatesNotFound(t *testing.T) {
	q := &stubQuotes{err: models.TokenNotFound("Token not found on CoinGecko")}
	_, err := newTestAdapter(&stubPairs{}, q).FetchPriceSnapshot(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTokenNotFound))
}
