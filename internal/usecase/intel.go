package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	domsvc "CryptoIntel/internal/domain/service"
)

// IntelGenerator produces the combined report that sentiment and persona build on.
type IntelGenerator interface {
	Generate(ctx context.Context, token string) (*models.IntelReport, error)
}

// IntelUseCase fetches one snapshot and runs both calculators over it,
// so probability and pulse always describe the same prices.
type IntelUseCase struct {
	prices    drepo.PriceSource
	estimator domsvc.ProbabilityEstimator
	detector  domsvc.PulseDetector
	composer  domsvc.IntelComposer
	now       func() time.Time
}

func NewIntelUseCase(prices drepo.PriceSource, estimator domsvc.ProbabilityEstimator, detector domsvc.PulseDetector, composer domsvc.IntelComposer) *IntelUseCase {
	return &IntelUseCase{prices: prices, estimator: estimator, detector: detector, composer: composer, now: time.Now}
}

func (uc *IntelUseCase) Generate(ctx context.Context, token string) (*models.IntelReport, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	snap, err := uc.prices.FetchPriceSnapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	prob := uc.estimator.Estimate(snap, now)
	pulse := uc.detector.Detect(snap, now)
	report := uc.composer.Compose(token, prob, pulse, now)
	return &report, nil
}

var _ IntelGenerator = (*IntelUseCase)(nil)
