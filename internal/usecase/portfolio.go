package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	xlogger "CryptoIntel/pkg/logger"
	xutil "CryptoIntel/pkg/util"
)

var errPortfolioStoreMissing = models.ConfigurationMissing("Portfolio store is not configured")

type PortfolioUseCase struct {
	store   drepo.PortfolioStore
	quotes  drepo.QuoteSource
	logger  *xlogger.Logger
	timeout time.Duration
}

func NewPortfolioUseCase(store drepo.PortfolioStore, quotes drepo.QuoteSource, logger *xlogger.Logger) *PortfolioUseCase {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PortfolioUseCase{store: store, quotes: quotes, logger: logger, timeout: 10 * time.Second}
}

// List values every position at the current price. A position whose price
// cannot be resolved is valued at its average price.
func (uc *PortfolioUseCase) List(ctx context.Context, userID string) ([]models.PositionValuation, error) {
	if uc.store == nil {
		return nil, errPortfolioStoreMissing
	}
	positions, err := uc.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	out := make([]models.PositionValuation, len(positions))
	var wg sync.WaitGroup
	for i := range positions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := positions[i]
			out[i] = Valuate(p, uc.price(lookupCtx, p))
		}(i)
	}
	wg.Wait()
	return out, nil
}

func (uc *PortfolioUseCase) price(ctx context.Context, p models.Position) float64 {
	if uc.quotes == nil {
		return p.AvgPrice
	}
	q, err := uc.quotes.Quote(ctx, strings.ToLower(p.TokenSymbol), false)
	if err != nil {
		uc.logger.Debug("position price lookup failed", xlogger.String("token", p.TokenSymbol), xlogger.Error(err))
		return p.AvgPrice
	}
	return q.Price
}

// Valuate computes value and profit of p at price. A zero cost basis reports 0%.
func Valuate(p models.Position, price float64) models.PositionValuation {
	total := p.Amount * price
	cost := p.Amount * p.AvgPrice
	pl := total - cost
	return models.PositionValuation{
		Position:             p,
		CurrentPrice:         price,
		TotalValue:           total,
		ProfitLoss:           pl,
		ProfitLossPercentage: xutil.SafeDiv(pl, cost) * 100,
	}
}

func (uc *PortfolioUseCase) Create(ctx context.Context, userID string, req *models.CreatePositionRequest) ([]models.Position, error) {
	if uc.store == nil {
		return nil, errPortfolioStoreMissing
	}
	addr := req.TokenAddress
	if addr != nil && *addr == "" {
		addr = nil
	}
	return uc.store.Create(ctx, userID, models.NewPosition{
		TokenSymbol:  req.TokenSymbol,
		TokenAddress: addr,
		Amount:       req.Amount.Float64(),
		AvgPrice:     req.AvgPrice.Float64(),
	})
}

func (uc *PortfolioUseCase) Update(ctx context.Context, userID string, req *models.UpdatePositionRequest) ([]models.Position, error) {
	if uc.store == nil {
		return nil, errPortfolioStoreMissing
	}
	return uc.store.Update(ctx, userID, req.PositionID, models.PositionUpdate{
		Amount:   req.Amount.Float64(),
		AvgPrice: req.AvgPrice.Float64(),
	})
}

func (uc *PortfolioUseCase) Delete(ctx context.Context, userID, positionID string) error {
	if uc.store == nil {
		return errPortfolioStoreMissing
	}
	return uc.store.Delete(ctx, userID, positionID)
}
