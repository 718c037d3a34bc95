package upstream

import (
	"context"
	"strings"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/pkg/config"
)

// CoinGeckoClient reads spot quotes from the CoinGecko simple price API.
type CoinGeckoClient struct{ base *HTTPServiceBase }

func NewCoinGeckoClient(cfg *config.Config, m drepo.Metrics) *CoinGeckoClient {
	base := NewHTTPServiceBase(ProviderCoinGecko, cfg.Upstream.CoinGecko, cfg.Upstream.Timeout, m)
	if key := cfg.Upstream.CoinGecko.APIKey; key != "" {
		base.SetHeader("x-cg-demo-api-key", key)
	}
	return &CoinGeckoClient{base: base}
}

// SimplePriceOptions selects the optional 24h fields of a simple price query.
type SimplePriceOptions struct {
	Change bool
	Volume bool
	Range  bool // 24h high and low
}

type cgEntry struct {
	USD       float64  `json:"usd"`
	Change24h *float64 `json:"usd_24h_change"`
	Vol24h    *float64 `json:"usd_24h_vol"`
	High24h   *float64 `json:"usd_24h_high"`
	Low24h    *float64 `json:"usd_24h_low"`
}

// SimplePrice returns the quotes of the requested ids that CoinGecko knows about.
// Unknown ids are absent from the result.
func (c *CoinGeckoClient) SimplePrice(ctx context.Context, ids []string, opts SimplePriceOptions) (map[string]models.Quote, error) {
	q := map[string][]string{
		"ids":           {strings.Join(ids, ",")},
		"vs_currencies": {"usd"},
	}
	if opts.Change {
		q["include_24hr_change"] = []string{"true"}
	}
	if opts.Volume {
		q["include_24hr_vol"] = []string{"true"}
	}
	if opts.Range {
		q["include_24hr_high"] = []string{"true"}
		q["include_24hr_low"] = []string{"true"}
	}

	var raw map[string]cgEntry
	if err := c.base.GetJSON(ctx, "/simple/price", q, &raw); err != nil {
		return nil, models.UpstreamUnavailable("Failed to fetch from CoinGecko", err)
	}

	out := make(map[string]models.Quote, len(raw))
	for id, e := range raw {
		quote := models.Quote{ID: id, Price: e.USD, High24h: e.High24h, Low24h: e.Low24h}
		if e.Change24h != nil {
			quote.Change24h = *e.Change24h
		}
		if e.Vol24h != nil {
			quote.Volume24h = *e.Vol24h
		}
		out[id] = quote
	}
	return out, nil
}

// Quote returns the quote of one catalog id with 24h change and volume.
func (c *CoinGeckoClient) Quote(ctx context.Context, id string, withRange bool) (*models.Quote, error) {
	quotes, err := c.SimplePrice(ctx, []string{id}, SimplePriceOptions{Change: true, Volume: true, Range: withRange})
	if err != nil {
		return nil, err
	}
	q, ok := quotes[id]
	if !ok {
		return nil, models.TokenNotFound("Token not found on CoinGecko")
	}
	return &q, nil
}

var _ drepo.QuoteSource = (*CoinGeckoClient)(nil)
