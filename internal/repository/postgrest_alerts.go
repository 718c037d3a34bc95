package repository

import (
	"context"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	xhttp "CryptoIntel/pkg/http"
)

const alertsTable = "price_alerts"

type PostgRESTAlertStore struct {
	c   *PostgRESTClient
	now func() time.Time
}

func NewPostgRESTAlertStore(c *PostgRESTClient) *PostgRESTAlertStore {
	return &PostgRESTAlertStore{c: c, now: time.Now}
}

func (s *PostgRESTAlertStore) List(ctx context.Context, userID string) ([]models.Alert, error) {
	var out []models.Alert
	q := map[string][]string{
		"user_id": eq(userID),
		"select":  {"*"},
		"order":   {"created_at.desc"},
	}
	if err := s.c.do(ctx, xhttp.MethodGet, alertsTable, q, nil, &out); err != nil {
		return nil, dbError("query", err, false)
	}
	return nonNil(out), nil
}

func (s *PostgRESTAlertStore) Create(ctx context.Context, userID string, in models.NewAlert) ([]models.Alert, error) {
	row := map[string]interface{}{
		"user_id":         userID,
		"token_symbol":    in.TokenSymbol,
		"alert_type":      in.AlertType,
		"threshold_value": in.ThresholdValue,
		"direction":       in.Direction,
		"is_active":       true,
	}
	var out []models.Alert
	if err := s.c.do(ctx, xhttp.MethodPost, alertsTable, nil, row, &out); err != nil {
		return nil, dbError("insert", err, true)
	}
	return nonNil(out), nil
}

func (s *PostgRESTAlertStore) Update(ctx context.Context, userID, alertID string, patch models.AlertPatch) ([]models.Alert, error) {
	upd := map[string]interface{}{"updated_at": s.now().UTC()}
	if patch.IsActive != nil {
		upd["is_active"] = *patch.IsActive
	}
	if patch.ThresholdValue != nil {
		upd["threshold_value"] = *patch.ThresholdValue
	}
	if patch.Direction != nil {
		upd["direction"] = *patch.Direction
	}
	q := map[string][]string{"id": eq(alertID), "user_id": eq(userID)}

	var out []models.Alert
	if err := s.c.do(ctx, xhttp.MethodPatch, alertsTable, q, upd, &out); err != nil {
		return nil, dbError("update", err, false)
	}
	return nonNil(out), nil
}

func (s *PostgRESTAlertStore) Delete(ctx context.Context, userID, alertID string) error {
	q := map[string][]string{"id": eq(alertID), "user_id": eq(userID)}
	if err := s.c.do(ctx, xhttp.MethodDelete, alertsTable, q, nil, nil); err != nil {
		return dbError("delete", err, false)
	}
	return nil
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

var _ drepo.AlertStore = (*PostgRESTAlertStore)(nil)
