package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	domsvc "CryptoIntel/internal/domain/service"
)

var errTokenRequired = models.MissingParameter("Token parameter required")

// ProbabilityUseCase estimates the short-term direction of one token.
type ProbabilityUseCase struct {
	prices    drepo.PriceSource
	estimator domsvc.ProbabilityEstimator
	now       func() time.Time
}

func NewProbabilityUseCase(prices drepo.PriceSource, estimator domsvc.ProbabilityEstimator) *ProbabilityUseCase {
	return &ProbabilityUseCase{prices: prices, estimator: estimator, now: time.Now}
}

func (uc *ProbabilityUseCase) Calculate(ctx context.Context, token string) (*models.ProbabilityResult, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	snap, err := uc.prices.FetchPriceSnapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	res := uc.estimator.Estimate(snap, uc.now())
	return &res, nil
}
