package pricing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/internal/services/upstream"
	"CryptoIntel/pkg/config"
	xutil "CryptoIntel/pkg/util"
)

// PairSource lists the DEX pairs of an on-chain token.
type PairSource interface {
	TokenPairs(ctx context.Context, token string) ([]upstream.DexPair, error)
}

// Adapter routes a token to Dexscreener or CoinGecko and normalizes the answer
// into a PriceSnapshot.
type Adapter struct {
	dex           PairSource
	catalog       drepo.QuoteSource
	metrics       drepo.Metrics
	minDexLen     int
	extrapolation float64
}

func NewAdapter(cfg *config.Config, dex PairSource, catalog drepo.QuoteSource, m drepo.Metrics) *Adapter {
	return &Adapter{
		dex:           dex,
		catalog:       catalog,
		metrics:       m,
		minDexLen:     cfg.Pipeline.DexTokenMinLength,
		extrapolation: cfg.Pipeline.CatalogExtrapolation,
	}
}

// IsDexToken reports whether token looks like an on-chain address rather than a catalog id.
func IsDexToken(token string, minLen int) bool {
	return len(token) > minLen || strings.Contains(token, "0x")
}

func (a *Adapter) FetchPriceSnapshot(ctx context.Context, token string) (*models.PriceSnapshot, error) {
	var (
		snap *models.PriceSnapshot
		err  error
	)
	if IsDexToken(token, a.minDexLen) {
		snap, err = a.fromDex(ctx, token)
	} else {
		snap, err = a.fromCatalog(ctx, token)
	}
	if err != nil {
		if a.metrics != nil {
			if kind, ok := models.KindOf(err); ok {
				a.metrics.RecordError(string(kind))
			}
		}
		return nil, err
	}
	if a.metrics != nil {
		a.metrics.RecordLastPrice(token, snap.Current)
	}
	return snap, nil
}

func (a *Adapter) fromDex(ctx context.Context, token string) (*models.PriceSnapshot, error) {
	pairs, err := a.dex.TokenPairs(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, models.NoPairsFound("No pairs found for this token")
	}

	pair := deepestPair(pairs)
	current, err := parsePrice(pair.PriceUSD)
	if err != nil {
		return nil, models.UpstreamUnavailable("Failed to fetch from Dexscreener", err)
	}

	change := models.PriceChange{M5: pair.PriceChange.M5, H1: pair.PriceChange.H1, H24: pair.PriceChange.H24}
	base, quote := pair.BaseToken, pair.QuoteToken
	return &models.PriceSnapshot{
		Token:        token,
		Route:        models.RouteDex,
		Current:      current,
		PreviousAt5m: xutil.SafeDiv(current, 1+change.M5/100),
		Change5m:     change.M5,
		Change1h:     change.H1,
		Change24h:    change.H24,
		Volume24h:    pair.Volume.H24,
		Liquidity:    pair.Liquidity.USD,
		Metadata: models.PriceMetadata{
			TokenAddress: token,
			PairAddress:  pair.PairAddress,
			BaseToken:    &base,
			QuoteToken:   &quote,
			DexID:        pair.DexID,
			Volume24h:    pair.Volume.H24,
			Liquidity:    models.Float64Ptr(pair.Liquidity.USD),
			PriceChange:  &change,
		},
	}, nil
}

func (a *Adapter) fromCatalog(ctx context.Context, token string) (*models.PriceSnapshot, error) {
	q, err := a.catalog.Quote(ctx, token, false)
	if err != nil {
		return nil, err
	}
	return &models.PriceSnapshot{
		Token:        token,
		Route:        models.RouteCatalog,
		Current:      q.Price,
		PreviousAt5m: xutil.SafeDiv(q.Price, 1+q.Change24h*a.extrapolation/100),
		Change24h:    q.Change24h,
		Volume24h:    q.Volume24h,
		Metadata: models.PriceMetadata{
			CoingeckoID:    token,
			Volume24h:      q.Volume24h,
			PriceChange24h: models.Float64Ptr(q.Change24h),
		},
	}, nil
}

// deepestPair picks the pair with the highest USD liquidity. Ties keep the first one.
func deepestPair(pairs []upstream.DexPair) upstream.DexPair {
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.Liquidity.USD > best.Liquidity.USD {
			best = p
		}
	}
	return best
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse priceUsd %q: %w", s, err)
	}
	return xutil.Finite(v), nil
}

var _ drepo.PriceSource = (*Adapter)(nil)
