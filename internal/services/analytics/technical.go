package analytics

import (
	"math"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

const rsiPeriod = 14

// TechnicalAnalyzer approximates classic indicators from a single 24h summary.
// There is no candle history, so every value is derived from price, change and range.
type TechnicalAnalyzer struct{}

func NewTechnicalAnalyzer() *TechnicalAnalyzer { return &TechnicalAnalyzer{} }

// MarketDataFromQuote fills a missing or zero 24h range with +/-2% of the price.
func MarketDataFromQuote(q *models.Quote) models.MarketData {
	md := models.MarketData{
		Current:   q.Price,
		Volume24h: q.Volume24h,
		Change24h: q.Change24h,
		High24h:   q.Price * 1.02,
		Low24h:    q.Price * 0.98,
	}
	if q.High24h != nil && *q.High24h != 0 {
		md.High24h = *q.High24h
	}
	if q.Low24h != nil && *q.Low24h != 0 {
		md.Low24h = *q.Low24h
	}
	return md
}

func (t *TechnicalAnalyzer) Indicators(md models.MarketData) models.TechnicalIndicators {
	return models.TechnicalIndicators{
		RSI:               rsi(md),
		MACD:              macd(md),
		MovingAverages:    movingAverages(md),
		BollingerBands:    bollinger(md),
		SupportResistance: pivots(md),
	}
}

func rsi(md models.MarketData) models.RSI {
	v := int(xutil.RoundHalfUp(xutil.Clamp(50+md.Change24h*2, 0, 100)))
	signal := "Neutral"
	switch {
	case v > 70:
		signal = "Overbought"
	case v < 30:
		signal = "Oversold"
	}
	return models.RSI{Value: v, Signal: signal, Period: rsiPeriod}
}

func macd(md models.MarketData) models.MACD {
	p, c := md.Current, md.Change24h
	ema12 := p * (1 + (c/100)*0.5)
	ema26 := p * (1 - (c/100)*0.3)
	line := ema12 - ema26
	signal := line * 0.9
	hist := line - signal
	trend := "Bearish"
	if hist > 0 {
		trend = "Bullish"
	}
	return models.MACD{
		MACD:      xutil.Fixed(line, 2),
		Signal:    xutil.Fixed(signal, 2),
		Histogram: xutil.Fixed(hist, 2),
		Trend:     trend,
	}
}

func movingAverages(md models.MarketData) models.MovingAverages {
	p := md.Current
	vol := math.Abs(md.Change24h) / 100
	at := func(k float64) string { return xutil.Fixed(p*(1+vol*k), 2) }
	return models.MovingAverages{
		SMA5:   at(0.5),
		SMA10:  at(0.3),
		SMA20:  at(0.1),
		SMA50:  at(-0.2),
		SMA200: at(-0.5),
		EMA5:   at(0.4),
		EMA10:  at(0.2),
		EMA20:  at(0.05),
	}
}

func bollinger(md models.MarketData) models.BollingerBands {
	std := (md.High24h - md.Low24h) / 4
	return models.BollingerBands{
		Upper:     xutil.Fixed(md.Current+2*std, 2),
		Middle:    xutil.Fixed(md.Current, 2),
		Lower:     xutil.Fixed(md.Current-2*std, 2),
		Bandwidth: xutil.Fixed(4*std, 2),
	}
}

func pivots(md models.MarketData) models.SupportResistance {
	h, l, p := md.High24h, md.Low24h, md.Current
	pivot := (h + l + p) / 3
	return models.SupportResistance{
		Resistance2: xutil.Fixed(pivot+(h-l), 2),
		Resistance1: xutil.Fixed(2*pivot-l, 2),
		PivotPoint:  xutil.Fixed(pivot, 2),
		Support1:    xutil.Fixed(2*pivot-h, 2),
		Support2:    xutil.Fixed(pivot-(h-l), 2),
	}
}

var _ domsvc.TechnicalAnalyzer = (*TechnicalAnalyzer)(nil)
