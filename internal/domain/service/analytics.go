package service

import (
	"time"

	"CryptoIntel/internal/domain/models"
)

// ProbabilityEstimator turns a snapshot into an up/down probability.
type ProbabilityEstimator interface {
	Estimate(snap *models.PriceSnapshot, now time.Time) models.ProbabilityResult
}

// PulseDetector flags anomalies in a snapshot.
type PulseDetector interface {
	Detect(snap *models.PriceSnapshot, now time.Time) models.PulseResult
}

// IntelComposer merges probability and pulse of one snapshot into a report.
type IntelComposer interface {
	Compose(token string, prob models.ProbabilityResult, pulse models.PulseResult, now time.Time) models.IntelReport
}

type SentimentScorer interface {
	Score(intel *models.IntelReport, now time.Time) models.SentimentResult
}

type PersonaResponder interface {
	Render(mode string, intel *models.IntelReport) string
}

type TechnicalAnalyzer interface {
	Indicators(md models.MarketData) models.TechnicalIndicators
}

// RiskCalculator runs one risk action. The result is JSON ready.
type RiskCalculator interface {
	Calculate(action models.RiskAction, in models.RiskInput) (any, error)
}

// NewsClassifier maps upstream articles to tagged news items.
type NewsClassifier interface {
	Item(i int, a models.Article) models.NewsItem
	Fallback(now time.Time, limit int) []models.NewsItem
}
