package analytics

import (
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	"CryptoIntel/pkg/config"
	xutil "CryptoIntel/pkg/util"
)

// ProbabilityEstimator maps the 5 minute change onto a linear up/down probability.
// A change of -offset maps to 0, +offset to 1 when span is twice the offset.
type ProbabilityEstimator struct {
	offset float64
	span   float64
}

func NewProbabilityEstimator(cfg *config.Config) *ProbabilityEstimator {
	return NewProbabilityEstimatorWith(cfg.Pipeline.SaturationOffset, cfg.Pipeline.SaturationSpan)
}

func NewProbabilityEstimatorWith(offset, span float64) *ProbabilityEstimator {
	if span <= 0 {
		span = 10
	}
	return &ProbabilityEstimator{offset: offset, span: span}
}

func (e *ProbabilityEstimator) Estimate(snap *models.PriceSnapshot, now time.Time) models.ProbabilityResult {
	pct := xutil.SafeDiv(snap.Current-snap.PreviousAt5m, snap.PreviousAt5m) * 100
	up := xutil.Clamp((pct+e.offset)/e.span, 0, 1)
	down := 1 - up

	return models.ProbabilityResult{
		Token:      snap.Token,
		PriceNow:   snap.Current,
		Price5mAgo: snap.PreviousAt5m,
		Change5m:   pct,
		Probability: models.Probability{
			Up:          up,
			Down:        down,
			UpPercent:   int(xutil.RoundHalfUp(up * 100)),
			DownPercent: int(xutil.RoundHalfUp(down * 100)),
		},
		Metadata:  snap.Metadata,
		Timestamp: now,
	}
}

var _ domsvc.ProbabilityEstimator = (*ProbabilityEstimator)(nil)
