package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CryptoIntel/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgRESTListAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/price_alerts", r.URL.Path)
		assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		_, _ = io.WriteString(w, `[{"id":"a1","user_id":"u1","token_symbol":"BTC","alert_type":"price","threshold_value":100,
			"direction":"above","is_active":true,"created_at":"2024-05-01T12:00:00.123456+00:00","updated_at":"2024-05-01T12:00:00+00:00"}]`)
	}))
	defer srv.Close()

	store := NewPostgRESTAlertStore(NewPostgRESTClient(srv.URL+"/", "secret", time.Second))
	alerts, err := store.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypePrice, alerts[0].AlertType)
	assert.Equal(t, 100.0, alerts[0].ThresholdValue)
	assert.Equal(t, 2024, alerts[0].CreatedAt.Year())
}

func TestPostgRESTCreateAlert(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":"a1","token_symbol":"BTC","is_active":true,"created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z"}]`)
	}))
	defer srv.Close()

	store := NewPostgRESTAlertStore(NewPostgRESTClient(srv.URL, "k", time.Second))
	out, err := store.Create(context.Background(), "u1", models.NewAlert{
		TokenSymbol: "BTC", AlertType: models.AlertTypePrice, ThresholdValue: 42.5, Direction: models.DirectionBelow,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, 42.5, body["threshold_value"])
	assert.Equal(t, "below", body["direction"])
	assert.Equal(t, true, body["is_active"])
}

func TestPostgRESTUpdateSendsOnlyGivenFields(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.a1", r.URL.Query().Get("id"))
		assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	store := NewPostgRESTAlertStore(NewPostgRESTClient(srv.URL, "k", time.Second))
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	active := false
	out, err := store.Update(context.Background(), "u1", "a1", models.AlertPatch{IsActive: &active})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Equal(t, false, body["is_active"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["updated_at"])
	assert.NotContains(t, body, "threshold_value")
	assert.NotContains(t, body, "direction")
}

func TestPostgRESTErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"bad"}`)
	}))
	defer srv.Close()

	c := NewPostgRESTClient(srv.URL, "k", time.Second)

	_, err := NewPostgRESTAlertStore(c).List(context.Background(), "u1")
	assert.EqualError(t, err, "Database query failed: Bad Request")

	_, err = NewPostgRESTPortfolioStore(c).Create(context.Background(), "u1", models.NewPosition{TokenSymbol: "eth"})
	assert.EqualError(t, err, `Database insert failed: {"message":"bad"}`)

	err = NewPostgRESTPortfolioStore(c).Delete(context.Background(), "u1", "p1")
	assert.EqualError(t, err, "Database delete failed: Bad Request")
}

func TestPostgRESTPortfolioUpdate(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/portfolio_positions", r.URL.Path)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `[{"id":"p1","token_address":null,"amount":3,"avg_price":10,"created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z"}]`)
	}))
	defer srv.Close()

	out, err := NewPostgRESTPortfolioStore(NewPostgRESTClient(srv.URL, "k", time.Second)).
		Update(context.Background(), "u1", "p1", models.PositionUpdate{Amount: 3, AvgPrice: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].TokenAddress)
	assert.Equal(t, 3.0, body["amount"])
	assert.Equal(t, 10.0, body["avg_price"])
	assert.Contains(t, body, "updated_at")
}
