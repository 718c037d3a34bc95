package upstream

import (
	"context"
	"net/url"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/pkg/config"
)

// DexscreenerClient reads DEX pairs of on-chain tokens.
type DexscreenerClient struct{ base *HTTPServiceBase }

func NewDexscreenerClient(cfg *config.Config, m drepo.Metrics) *DexscreenerClient {
	return &DexscreenerClient{base: NewHTTPServiceBase(ProviderDexscreener, cfg.Upstream.Dexscreener, cfg.Upstream.Timeout, m)}
}

// DexPair is one trading pair as returned by /latest/dex/tokens.
type DexPair struct {
	DexID       string           `json:"dexId"`
	PairAddress string           `json:"pairAddress"`
	BaseToken   models.PairToken `json:"baseToken"`
	QuoteToken  models.PairToken `json:"quoteToken"`
	PriceUSD    string           `json:"priceUsd"`
	PriceChange struct {
		M5  float64 `json:"m5"`
		H1  float64 `json:"h1"`
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

type dexTokensResponse struct {
	Pairs []DexPair `json:"pairs"`
}

// TokenPairs returns every pair listed for token. A null pairs field yields an empty slice.
func (c *DexscreenerClient) TokenPairs(ctx context.Context, token string) ([]DexPair, error) {
	var resp dexTokensResponse
	if err := c.base.GetJSON(ctx, "/latest/dex/tokens/"+url.PathEscape(token), nil, &resp); err != nil {
		return nil, models.UpstreamUnavailable("Failed to fetch from Dexscreener", err)
	}
	return resp.Pairs, nil
}
