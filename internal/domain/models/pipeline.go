package models

import "time"

type Probability struct {
	Up          float64 `json:"up"`
	Down        float64 `json:"down"`
	UpPercent   int     `json:"upPercent"`
	DownPercent int     `json:"downPercent"`
}

type ProbabilityResult struct {
	Token       string        `json:"token"`
	PriceNow    float64       `json:"priceNow"`
	Price5mAgo  float64       `json:"price5mAgo"`
	Change5m    float64       `json:"change5m"`
	Probability Probability   `json:"probability"`
	Metadata    PriceMetadata `json:"metadata"`
	Timestamp   time.Time     `json:"timestamp"`
}

type AnomalyType string

const (
	AnomalyVolumeSpike    AnomalyType = "volume_spike"
	AnomalyPriceSpike5m   AnomalyType = "price_spike_5m"
	AnomalyHighVolatility AnomalyType = "high_volatility"
	AnomalyPriceSpike24h  AnomalyType = "price_spike_24h"
)

// IsPriceSpike reports whether the anomaly is one of the price_spike_* kinds.
func (t AnomalyType) IsPriceSpike() bool {
	return t == AnomalyPriceSpike5m || t == AnomalyPriceSpike24h
}

type Severity string

const (
	SeverityNormal Severity = "normal"
	SeverityMinor  Severity = "minor"
	SeverityMedium Severity = "medium"
	SeverityMajor  Severity = "major"
)

type Anomaly struct {
	Type        AnomalyType `json:"type"`
	Value       float64     `json:"value"`
	Description string      `json:"description"`
}

type PulseResult struct {
	HasAnomaly bool          `json:"hasAnomaly"`
	Anomalies  []Anomaly     `json:"anomalies"`
	Severity   Severity      `json:"severity"`
	Metadata   PulseMetadata `json:"metadata"`
	Timestamp  time.Time     `json:"timestamp"`
}

type IntelProbability struct {
	UpPercent   int     `json:"upPercent"`
	DownPercent int     `json:"downPercent"`
	Change5m    float64 `json:"change5m"`
}

type IntelPulse struct {
	HasAnomaly bool      `json:"hasAnomaly"`
	Severity   Severity  `json:"severity"`
	Anomalies  []Anomaly `json:"anomalies"`
}

type PriceData struct {
	Current    float64 `json:"current"`
	Previous5m float64 `json:"previous5m"`
}

// IntelMetadata flattens the probability metadata and nests the pulse metadata.
type IntelMetadata struct {
	PriceMetadata
	PulseMetadata PulseMetadata `json:"pulseMetadata"`
}

type IntelReport struct {
	Token          string           `json:"token"`
	Summary        string           `json:"summary"`
	Probability    IntelProbability `json:"probability"`
	Pulse          IntelPulse       `json:"pulse"`
	PriceData      PriceData        `json:"priceData"`
	Metadata       IntelMetadata    `json:"metadata"`
	Recommendation string           `json:"recommendation"`
	Timestamp      time.Time        `json:"timestamp"`
}

type SentimentScore struct {
	Score           int    `json:"score"`
	Label           string `json:"label"`
	FearGreedIndex  int    `json:"fearGreedIndex"`
	MarketMomentum  string `json:"marketMomentum"`
	SocialSentiment string `json:"socialSentiment"`
}

type SentimentIndicators struct {
	BullishSignals []string `json:"bullishSignals"`
	BearishSignals []string `json:"bearishSignals"`
	NeutralFactors []string `json:"neutralFactors"`
}

type SentimentResult struct {
	Token          string              `json:"token"`
	Sentiment      SentimentScore      `json:"sentiment"`
	Indicators     SentimentIndicators `json:"indicators"`
	Analysis       string              `json:"analysis"`
	Recommendation string              `json:"recommendation"`
	Timestamp      time.Time           `json:"timestamp"`
}

const (
	PersonaGenki    = "genki"
	PersonaSemangat = "semangat"
)

type PersonaResponse struct {
	Mode      string       `json:"mode"`
	Message   string       `json:"message"`
	RawData   *IntelReport `json:"rawData"`
	Timestamp time.Time    `json:"timestamp"`
}
