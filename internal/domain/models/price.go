package models

// Route tells which upstream produced a snapshot.
type Route string

const (
	RouteDex     Route = "dexscreener" // on-chain address
	RouteCatalog Route = "coingecko"   // catalog id
)

type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type PriceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H24 float64 `json:"h24"`
}

// PriceMetadata is the source-specific metadata attached to probability and intel results.
// Dex-only and catalog-only fields are omitted for the other route.
type PriceMetadata struct {
	TokenAddress   string       `json:"tokenAddress,omitempty"`
	PairAddress    string       `json:"pairAddress,omitempty"`
	BaseToken      *PairToken   `json:"baseToken,omitempty"`
	QuoteToken     *PairToken   `json:"quoteToken,omitempty"`
	DexID          string       `json:"dexId,omitempty"`
	CoingeckoID    string       `json:"coingeckoId,omitempty"`
	Volume24h      float64      `json:"volume24h"`
	Liquidity      *float64     `json:"liquidity,omitempty"`
	PriceChange    *PriceChange `json:"priceChange,omitempty"`
	PriceChange24h *float64     `json:"priceChange24h,omitempty"`
}

// PulseMetadata is the metadata attached to pulse results.
type PulseMetadata struct {
	TokenAddress   string       `json:"tokenAddress,omitempty"`
	VolumeH24      *float64     `json:"volumeH24,omitempty"`
	Liquidity      *float64     `json:"liquidity,omitempty"`
	PriceChange    *PriceChange `json:"priceChange,omitempty"`
	CoingeckoID    string       `json:"coingeckoId,omitempty"`
	Volume24h      *float64     `json:"volume24h,omitempty"`
	PriceChange24h *float64     `json:"priceChange24h,omitempty"`
}

// PriceSnapshot is one normalized observation of a token.
type PriceSnapshot struct {
	Token        string
	Route        Route
	Current      float64
	PreviousAt5m float64
	Change5m     float64 // percent, dex only
	Change1h     float64 // percent, dex only
	Change24h    float64 // percent
	Volume24h    float64
	Liquidity    float64 // usd, dex only
	Metadata     PriceMetadata
}

// IsDex reports whether the snapshot came from the on-chain route.
func (s *PriceSnapshot) IsDex() bool { return s.Route == RouteDex }

// Quote is a catalog spot quote in USD.
type Quote struct {
	ID        string
	Price     float64
	Change24h float64
	Volume24h float64
	High24h   *float64
	Low24h    *float64
}

func Float64Ptr(v float64) *float64 { return &v }
