package analytics

import (
	"fmt"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
)

const (
	RecommendationWaspada   = "WASPADA: Volatilitas sangat tinggi. Risiko besar, potensi gain/loss signifikan."
	RecommendationPerhatian = "PERHATIAN: Aktivitas market meningkat. Monitor dengan ketat."
	RecommendationBullish   = "BULLISH: Probabilitas naik tinggi. Pertimbangkan entry dengan risk management."
	RecommendationBearish   = "BEARISH: Probabilitas turun tinggi. Pertimbangkan exit atau hold."
	RecommendationNetral    = "NETRAL: Market dalam kondisi seimbang. Tunggu signal lebih kuat."
)

// IntelComposer merges a probability estimate and a pulse reading of the same snapshot.
type IntelComposer struct{}

func NewIntelComposer() *IntelComposer { return &IntelComposer{} }

func (c *IntelComposer) Compose(token string, prob models.ProbabilityResult, pulse models.PulseResult, now time.Time) models.IntelReport {
	anomalies := pulse.Anomalies
	if anomalies == nil {
		anomalies = make([]models.Anomaly, 0)
	}
	return models.IntelReport{
		Token:   token,
		Summary: Summary(prob.Probability.UpPercent, pulse),
		Probability: models.IntelProbability{
			UpPercent:   prob.Probability.UpPercent,
			DownPercent: prob.Probability.DownPercent,
			Change5m:    prob.Change5m,
		},
		Pulse: models.IntelPulse{
			HasAnomaly: pulse.HasAnomaly,
			Severity:   pulse.Severity,
			Anomalies:  anomalies,
		},
		PriceData: models.PriceData{
			Current:    prob.PriceNow,
			Previous5m: prob.Price5mAgo,
		},
		Metadata: models.IntelMetadata{
			PriceMetadata: prob.Metadata,
			PulseMetadata: pulse.Metadata,
		},
		Recommendation: Recommendation(prob.Probability.UpPercent, pulse.Severity),
		Timestamp:      now,
	}
}

// Summary renders the one line trend summary.
func Summary(upPercent int, pulse models.PulseResult) string {
	trend := "TURUN"
	if upPercent >= 50 {
		trend = "NAIK"
	}
	confidence := upPercent - 50
	if confidence < 0 {
		confidence = -confidence
	}
	anomalyText := " Tidak ada anomali signifikan."
	if pulse.HasAnomaly {
		anomalyText = fmt.Sprintf(" Terdeteksi %d anomali (%s).", len(pulse.Anomalies), pulse.Severity)
	}
	return fmt.Sprintf("Token menunjukkan tren %s dengan confidence %d%%.%s", trend, confidence, anomalyText)
}

// Recommendation picks the first matching rule: severity first, then probability.
func Recommendation(upPercent int, severity models.Severity) string {
	switch {
	case severity == models.SeverityMajor:
		return RecommendationWaspada
	case severity == models.SeverityMedium:
		return RecommendationPerhatian
	case upPercent >= 70:
		return RecommendationBullish
	case upPercent <= 30:
		return RecommendationBearish
	default:
		return RecommendationNetral
	}
}

var _ domsvc.IntelComposer = (*IntelComposer)(nil)
