package usecase

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	domsvc "CryptoIntel/internal/domain/service"
)

type PulseUseCase struct {
	prices   drepo.PriceSource
	detector domsvc.PulseDetector
	now      func() time.Time
}

func NewPulseUseCase(prices drepo.PriceSource, detector domsvc.PulseDetector) *PulseUseCase {
	return &PulseUseCase{prices: prices, detector: detector, now: time.Now}
}

func (uc *PulseUseCase) Detect(ctx context.Context, token string) (*models.PulseResult, error) {
	if token == "" {
		return nil, errTokenRequired
	}
	snap, err := uc.prices.FetchPriceSnapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	res := uc.detector.Detect(snap, uc.now())
	return &res, nil
}
