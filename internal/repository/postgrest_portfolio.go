package repository

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	xhttp "CryptoIntel/pkg/http"
)

const positionsTable = "portfolio_positions"

type PostgRESTPortfolioStore struct {
	c   *PostgRESTClient
	now func() time.Time
}

func NewPostgRESTPortfolioStore(c *PostgRESTClient) *PostgRESTPortfolioStore {
	return &PostgRESTPortfolioStore{c: c, now: time.Now}
}

func (s *PostgRESTPortfolioStore) List(ctx context.Context, userID string) ([]models.Position, error) {
	var out []models.Position
	q := map[string][]string{
		"user_id": eq(userID),
		"select":  {"*"},
		"order":   {"created_at.desc"},
	}
	if err := s.c.do(ctx, xhttp.MethodGet, positionsTable, q, nil, &out); err != nil {
		return nil, dbError("query", err, false)
	}
	return nonNil(out), nil
}

func (s *PostgRESTPortfolioStore) Create(ctx context.Context, userID string, in models.NewPosition) ([]models.Position, error) {
	row := map[string]interface{}{
		"user_id":       userID,
		"token_symbol":  in.TokenSymbol,
		"token_address": in.TokenAddress,
		"amount":        in.Amount,
		"avg_price":     in.AvgPrice,
	}
	var out []models.Position
	if err := s.c.do(ctx, xhttp.MethodPost, positionsTable, nil, row, &out); err != nil {
		return nil, dbError("insert", err, true)
	}
	return nonNil(out), nil
}

func (s *PostgRESTPortfolioStore) Update(ctx context.Context, userID, positionID string, upd models.PositionUpdate) ([]models.Position, error) {
	body := map[string]interface{}{
		"amount":     upd.Amount,
		"avg_price":  upd.AvgPrice,
		"updated_at": s.now().UTC(),
	}
	q := map[string][]string{"id": eq(positionID), "user_id": eq(userID)}

	var out []models.Position
	if err := s.c.do(ctx, xhttp.MethodPatch, positionsTable, q, body, &out); err != nil {
		return nil, dbError("update", err, false)
	}
	return nonNil(out), nil
}

func (s *PostgRESTPortfolioStore) Delete(ctx context.Context, userID, positionID string) error {
	q := map[string][]string{"id": eq(positionID), "user_id": eq(userID)}
	if err := s.c.do(ctx, xhttp.MethodDelete, positionsTable, q, nil, nil); err != nil {
		return dbError("delete", err, false)
	}
	return nil
}

var _ drepo.PortfolioStore = (*PostgRESTPortfolioStore)(nil)
