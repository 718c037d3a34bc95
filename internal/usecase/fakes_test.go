package usecase

import (
	"context"
	"sync"
	"time"

	"CryptoIntel/internal/domain/models"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakePrices struct {
	snap  *models.PriceSnapshot
	err   error
	calls int
}

func (f *fakePrices) FetchPriceSnapshot(context.Context, string) (*models.PriceSnapshot, error) {
	f.calls++
	return f.snap, f.err
}

type fakeQuotes struct {
	mu     sync.Mutex
	prices map[string]float64
	err    error
	asked  []string
}

func (f *fakeQuotes) Quote(_ context.Context, id string, _ bool) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, id)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.prices[id]
	if !ok {
		return nil, models.TokenNotFound("Token not found on CoinGecko")
	}
	return &models.Quote{ID: id, Price: p}, nil
}

type fakeMetrics struct {
	mu        sync.Mutex
	errors    []string
	triggered []string
}

func (f *fakeMetrics) RecordUpstreamRequest(string, string) {}
func (f *fakeMetrics) RecordLastPrice(string, float64)      {}
func (f *fakeMetrics) RecordLatency(string, float64)        {}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, kind)
}

func (f *fakeMetrics) RecordAlertTriggered(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, kind)
}

type fakeAlertStore struct {
	alerts    []models.Alert
	err       error
	created   models.NewAlert
	patch     models.AlertPatch
	patchedID string
	deleted   string
}

func (f *fakeAlertStore) List(context.Context, string) ([]models.Alert, error) {
	return f.alerts, f.err
}

func (f *fakeAlertStore) Create(_ context.Context, userID string, in models.NewAlert) ([]models.Alert, error) {
	f.created = in
	return []models.Alert{{ID: "new", UserID: userID, TokenSymbol: in.TokenSymbol, AlertType: in.AlertType,
		ThresholdValue: in.ThresholdValue, Direction: in.Direction, IsActive: true}}, f.err
}

func (f *fakeAlertStore) Update(_ context.Context, _ string, alertID string, patch models.AlertPatch) ([]models.Alert, error) {
	f.patchedID = alertID
	f.patch = patch
	return []models.Alert{{ID: alertID}}, f.err
}

func (f *fakeAlertStore) Delete(_ context.Context, _ string, alertID string) error {
	f.deleted = alertID
	return f.err
}

type fakePublisher struct {
	events []models.AlertTriggeredEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, events []models.AlertTriggeredEvent) error {
	f.events = append(f.events, events...)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fakeEventStore struct {
	stored []models.AlertTriggeredEvent
	recent []models.AlertTriggeredEvent
	err    error
	limit  int
}

func (f *fakeEventStore) Init(context.Context) error { return nil }

func (f *fakeEventStore) StoreBatch(_ context.Context, events []models.AlertTriggeredEvent) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, events...)
	return nil
}

func (f *fakeEventStore) Recent(_ context.Context, _ string, limit int) ([]models.AlertTriggeredEvent, error) {
	f.limit = limit
	return f.recent, f.err
}

func (f *fakeEventStore) Health(context.Context) error { return nil }
func (f *fakeEventStore) Close() error                 { return nil }

type fakePortfolioStore struct {
	positions []models.Position
	created   models.NewPosition
	update    models.PositionUpdate
}

func (f *fakePortfolioStore) List(context.Context, string) ([]models.Position, error) {
	return f.positions, nil
}

func (f *fakePortfolioStore) Create(_ context.Context, _ string, in models.NewPosition) ([]models.Position, error) {
	f.created = in
	return []models.Position{{ID: "p1", TokenSymbol: in.TokenSymbol}}, nil
}

func (f *fakePortfolioStore) Update(_ context.Context, _ string, id string, upd models.PositionUpdate) ([]models.Position, error) {
	f.update = upd
	return []models.Position{{ID: id, Amount: upd.Amount, AvgPrice: upd.AvgPrice}}, nil
}

func (f *fakePortfolioStore) Delete(context.Context, string, string) error { return nil }

type fakeNews struct {
	articles []models.Article
	err      error
	calls    int
}

func (f *fakeNews) LatestNews(context.Context) ([]models.Article, error) {
	f.calls++
	return f.articles, f.err
}
