package repository

import (
	"context"
	"strings"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const alertColumns = "id, user_id, token_symbol, alert_type, threshold_value, direction, is_active, created_at, updated_at"

// SQLAlertStore keeps price alerts in Postgres or SQLite.
type SQLAlertStore struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

func NewSQLAlertStore(db *sqlx.DB) *SQLAlertStore {
	return &SQLAlertStore{db: db, now: time.Now, newID: uuid.NewString}
}

func (s *SQLAlertStore) List(ctx context.Context, userID string) ([]models.Alert, error) {
	out := []models.Alert{}
	q := s.db.Rebind("SELECT " + alertColumns + " FROM price_alerts WHERE user_id = ? ORDER BY created_at DESC")
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, sqlError("query", err)
	}
	return out, nil
}

func (s *SQLAlertStore) Create(ctx context.Context, userID string, in models.NewAlert) ([]models.Alert, error) {
	now := s.now().UTC()
	id := s.newID()
	q := s.db.Rebind(`INSERT INTO price_alerts (` + alertColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q, id, userID, in.TokenSymbol, in.AlertType, in.ThresholdValue, in.Direction, true, now, now)
	if err != nil {
		return nil, sqlError("insert", err)
	}
	return s.byID(ctx, userID, id, "insert")
}

func (s *SQLAlertStore) Update(ctx context.Context, userID, alertID string, patch models.AlertPatch) ([]models.Alert, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{s.now().UTC()}
	if patch.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *patch.IsActive)
	}
	if patch.ThresholdValue != nil {
		sets = append(sets, "threshold_value = ?")
		args = append(args, *patch.ThresholdValue)
	}
	if patch.Direction != nil {
		sets = append(sets, "direction = ?")
		args = append(args, *patch.Direction)
	}
	args = append(args, alertID, userID)

	q := s.db.Rebind("UPDATE price_alerts SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?")
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, sqlError("update", err)
	}
	return s.byID(ctx, userID, alertID, "update")
}

// byID reads back the row a write touched; an id owned by another user yields an empty list.
func (s *SQLAlertStore) byID(ctx context.Context, userID, alertID, action string) ([]models.Alert, error) {
	out := []models.Alert{}
	q := s.db.Rebind("SELECT " + alertColumns + " FROM price_alerts WHERE id = ? AND user_id = ?")
	if err := s.db.SelectContext(ctx, &out, q, alertID, userID); err != nil {
		return nil, sqlError(action, err)
	}
	return out, nil
}

func (s *SQLAlertStore) Delete(ctx context.Context, userID, alertID string) error {
	q := s.db.Rebind("DELETE FROM price_alerts WHERE id = ? AND user_id = ?")
	if _, err := s.db.ExecContext(ctx, q, alertID, userID); err != nil {
		return sqlError("delete", err)
	}
	return nil
}

var _ drepo.AlertStore = (*SQLAlertStore)(nil)
