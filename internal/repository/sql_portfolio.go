package repository

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const positionColumns = "id, user_id, token_symbol, token_address, amount, avg_price, created_at, updated_at"

type SQLPortfolioStore struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

func NewSQLPortfolioStore(db *sqlx.DB) *SQLPortfolioStore {
	return &SQLPortfolioStore{db: db, now: time.Now, newID: uuid.NewString}
}

func (s *SQLPortfolioStore) List(ctx context.Context, userID string) ([]models.Position, error) {
	out := []models.Position{}
	q := s.db.Rebind("SELECT " + positionColumns + " FROM portfolio_positions WHERE user_id = ? ORDER BY created_at DESC")
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, sqlError("query", err)
	}
	return out, nil
}

func (s *SQLPortfolioStore) Create(ctx context.Context, userID string, in models.NewPosition) ([]models.Position, error) {
	now := s.now().UTC()
	id := s.newID()
	q := s.db.Rebind(`INSERT INTO portfolio_positions (` + positionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q, id, userID, in.TokenSymbol, in.TokenAddress, in.Amount, in.AvgPrice, now, now)
	if err != nil {
		return nil, sqlError("insert", err)
	}
	return s.byID(ctx, userID, id, "insert")
}

func (s *SQLPortfolioStore) Update(ctx context.Context, userID, positionID string, upd models.PositionUpdate) ([]models.Position, error) {
	q := s.db.Rebind("UPDATE portfolio_positions SET amount = ?, avg_price = ?, updated_at = ? WHERE id = ? AND user_id = ?")
	if _, err := s.db.ExecContext(ctx, q, upd.Amount, upd.AvgPrice, s.now().UTC(), positionID, userID); err != nil {
		return nil, sqlError("update", err)
	}
	return s.byID(ctx, userID, positionID, "update")
}

func (s *SQLPortfolioStore) byID(ctx context.Context, userID, positionID, action string) ([]models.Position, error) {
	out := []models.Position{}
	q := s.db.Rebind("SELECT " + positionColumns + " FROM portfolio_positions WHERE id = ? AND user_id = ?")
	if err := s.db.SelectContext(ctx, &out, q, positionID, userID); err != nil {
		return nil, sqlError(action, err)
	}
	return out, nil
}

func (s *SQLPortfolioStore) Delete(ctx context.Context, userID, positionID string) error {
	q := s.db.Rebind("DELETE FROM portfolio_positions WHERE id = ? AND user_id = ?")
	if _, err := s.db.ExecContext(ctx, q, positionID, userID); err != nil {
		return sqlError("delete", err)
	}
	return nil
}

var _ drepo.PortfolioStore = (*SQLPortfolioStore)(nil)
