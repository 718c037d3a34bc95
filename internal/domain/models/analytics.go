package models

import "time"

type RSI struct {
	Value  int    `json:"value"`
	Signal string `json:"signal"`
	Period int    `json:"period"`
}

type MACD struct {
	MACD      string `json:"macd"`
	Signal    string `json:"signal"`
	Histogram string `json:"histogram"`
	Trend     string `json:"trend"`
}

type MovingAverages struct {
	SMA5   string `json:"sma5"`
	SMA10  string `json:"sma10"`
	SMA20  string `json:"sma20"`
	SMA50  string `json:"sma50"`
	SMA200 string `json:"sma200"`
	EMA5   string `json:"ema5"`
	EMA10  string `json:"ema10"`
	EMA20  string `json:"ema20"`
}

type BollingerBands struct {
	Upper     string `json:"upper"`
	Middle    string `json:"middle"`
	Lower     string `json:"lower"`
	Bandwidth string `json:"bandwidth"`
}

type SupportResistance struct {
	Resistance2 string `json:"resistance2"`
	Resistance1 string `json:"resistance1"`
	PivotPoint  string `json:"pivotPoint"`
	Support1    string `json:"support1"`
	Support2    string `json:"support2"`
}

type TechnicalIndicators struct {
	RSI               RSI               `json:"rsi"`
	MACD              MACD              `json:"macd"`
	MovingAverages    MovingAverages    `json:"movingAverages"`
	BollingerBands    BollingerBands    `json:"bollingerBands"`
	SupportResistance SupportResistance `json:"supportResistance"`
}

const IndicatorAll = "all"

// Select returns the indicators keyed by name. "all" returns every indicator,
// an unknown name returns an empty map.
func (t TechnicalIndicators) Select(name string) map[string]any {
	all := map[string]any{
		"rsi":               t.RSI,
		"macd":              t.MACD,
		"movingAverages":    t.MovingAverages,
		"bollingerBands":    t.BollingerBands,
		"supportResistance": t.SupportResistance,
	}
	if name == IndicatorAll {
		return all
	}
	out := map[string]any{}
	if v, ok := all[name]; ok {
		out[name] = v
	}
	return out
}

// MarketData is the 24h price summary used by the indicators.
type MarketData struct {
	Current   float64 `json:"current"`
	High24h   float64 `json:"high24h"`
	Low24h    float64 `json:"low24h"`
	Volume24h float64 `json:"volume24h"`
	Change24h float64 `json:"change24h"`
}

type AnalyticsReport struct {
	Token      string         `json:"token"`
	Indicators map[string]any `json:"indicators"`
	PriceData  MarketData     `json:"priceData"`
	Timestamp  time.Time      `json:"timestamp"`
}
