package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
)

type SentimentUseCase struct {
	intel  IntelGenerator
	scorer domsvc.SentimentScorer
	now    func() time.Time
}

func NewSentimentUseCase(intel IntelGenerator, scorer domsvc.SentimentScorer) *SentimentUseCase {
	return &SentimentUseCase{intel: intel, scorer: scorer, now: time.Now}
}

func (uc *SentimentUseCase) Analyze(ctx context.Context, token string) (*models.SentimentResult, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	report, err := uc.intel.Generate(ctx, token)
	if err != nil {
		return nil, models.DependentCallFailed(err)
	}
	res := uc.scorer.Score(report, uc.now())
	return &res, nil
}
