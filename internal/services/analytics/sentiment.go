package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

// SentimentScorer derives a 0..100 market sentiment from an intel report.
type SentimentScorer struct{}

func NewSentimentScorer() *SentimentScorer { return &SentimentScorer{} }

func (s *SentimentScorer) Score(intel *models.IntelReport, now time.Time) models.SentimentResult {
	score := SentimentScore(intel)
	return models.SentimentResult{
		Token: intel.Token,
		Sentiment: models.SentimentScore{
			Score:           score,
			Label:           SentimentLabel(score),
			FearGreedIndex:  FearGreedIndex(intel),
			MarketMomentum:  MarketMomentum(intel),
			SocialSentiment: SocialSentiment(intel),
		},
		Indicators: models.SentimentIndicators{
			BullishSignals: bullishSignals(intel),
			BearishSignals: bearishSignals(intel),
			NeutralFactors: neutralFactors(intel),
		},
		Analysis:       Analysis(intel, score),
		Recommendation: intel.Recommendation,
		Timestamp:      now,
	}
}

func SentimentScore(intel *models.IntelReport) int {
	score := 50.0
	score += float64(intel.Probability.UpPercent-50) * 0.8
	score += xutil.Clamp(intel.Probability.Change5m*3, -15, 15)
	if intel.Pulse.HasAnomaly {
		switch intel.Pulse.Severity {
		case models.SeverityMajor:
			score -= 10
		case models.SeverityMedium:
			score -= 5
		}
	}
	return int(xutil.Clamp(xutil.RoundHalfUp(score), 0, 100))
}

func SentimentLabel(score int) string {
	switch {
	case score >= 75:
		return "Extremely Bullish"
	case score >= 60:
		return "Bullish"
	case score >= 40:
		return "Neutral"
	case score >= 25:
		return "Bearish"
	default:
		return "Extremely Bearish"
	}
}

// FearGreedIndex runs from 0 (extreme fear) to 100 (extreme greed).
func FearGreedIndex(intel *models.IntelReport) int {
	index := 50
	ch := intel.Probability.Change5m
	switch {
	case ch > 2:
		index += 20
	case ch > 0.5:
		index += 10
	case ch < -2:
		index -= 20
	case ch < -0.5:
		index -= 10
	}
	if intel.Pulse.HasAnomaly {
		if intel.Pulse.Severity == models.SeverityMajor {
			index -= 15
		} else {
			index -= 10
		}
	}
	return int(xutil.Clamp(float64(index), 0, 100))
}

func MarketMomentum(intel *models.IntelReport) string {
	ch := intel.Probability.Change5m
	up := intel.Probability.UpPercent
	switch {
	case ch > 1 && up > 60:
		return "Strong Bull"
	case ch > 0.5 && up > 55:
		return "Moderate Bull"
	case ch < -1 && up < 40:
		return "Strong Bear"
	case ch < -0.5 && up < 45:
		return "Moderate Bear"
	default:
		return "Neutral"
	}
}

// SocialSentiment is a proxy derived from the up probability only.
func SocialSentiment(intel *models.IntelReport) string {
	up := intel.Probability.UpPercent
	switch {
	case up > 70:
		return "Highly Positive"
	case up > 55:
		return "Positive"
	case up < 30:
		return "Highly Negative"
	case up < 45:
		return "Negative"
	default:
		return "Neutral"
	}
}

func bullishSignals(intel *models.IntelReport) []string {
	out := make([]string, 0, 3)
	if intel.Probability.UpPercent > 60 {
		out = append(out, "Strong upward probability detected")
	}
	if intel.Probability.Change5m > 0.5 {
		out = append(out, "Positive price momentum in short term")
	}
	if !intel.Pulse.HasAnomaly {
		out = append(out, "Stable market conditions")
	}
	return out
}

func bearishSignals(intel *models.IntelReport) []string {
	out := make([]string, 0, 3)
	if intel.Probability.DownPercent > 60 {
		out = append(out, "Strong downward probability detected")
	}
	if intel.Probability.Change5m < -0.5 {
		out = append(out, "Negative price momentum in short term")
	}
	if intel.Pulse.Severity == models.SeverityMajor {
		out = append(out, "High volatility and market anomalies")
	}
	return out
}

func neutralFactors(intel *models.IntelReport) []string {
	out := make([]string, 0, 2)
	if up := intel.Probability.UpPercent; up >= 45 && up <= 55 {
		out = append(out, "Balanced probability distribution")
	}
	if math.Abs(intel.Probability.Change5m) < 0.3 {
		out = append(out, "Low price volatility")
	}
	return out
}

// Analysis renders the narrative paragraph of a sentiment result.
func Analysis(intel *models.IntelReport, score int) string {
	var b strings.Builder
	ch := intel.Probability.Change5m
	fmt.Fprintf(&b, "Market analysis for %s: ", intel.Token)
	fmt.Fprintf(&b, "Current price at $%s with %s%s%% 5-minute change. ",
		xutil.Fixed(intel.PriceData.Current, 8), signPrefix(ch), xutil.Fixed(ch, 2))
	fmt.Fprintf(&b, "Sentiment score: %d/100 (%s). ", score, SentimentLabel(score))
	fmt.Fprintf(&b, "Upward probability: %d%%. ", intel.Probability.UpPercent)
	if intel.Pulse.HasAnomaly {
		fmt.Fprintf(&b, "Alert: %d market anomaly detected (%s severity). ", len(intel.Pulse.Anomalies), intel.Pulse.Severity)
	}
	return b.String()
}

func signPrefix(x float64) string {
	if x >= 0 {
		return "+"
	}
	return ""
}

var _ domsvc.SentimentScorer = (*SentimentScorer)(nil)
