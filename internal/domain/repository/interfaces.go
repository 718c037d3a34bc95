package repository

import (
	"context"

	"CryptoIntel/internal/domain/models"
)

// PriceSource produces one normalized snapshot per token.
type PriceSource interface {
	FetchPriceSnapshot(ctx context.Context, token string) (*models.PriceSnapshot, error)
}

// QuoteSource returns catalog spot quotes. withRange asks for the 24h high/low.
type QuoteSource interface {
	Quote(ctx context.Context, id string, withRange bool) (*models.Quote, error)
}

type NewsSource interface {
	LatestNews(ctx context.Context) ([]models.Article, error)
}

type AlertStore interface {
	List(ctx context.Context, userID string) ([]models.Alert, error)
	Create(ctx context.Context, userID string, in models.NewAlert) ([]models.Alert, error)
	Update(ctx context.Context, userID, alertID string, patch models.AlertPatch) ([]models.Alert, error)
	Delete(ctx context.Context, userID, alertID string) error
}

type PortfolioStore interface {
	List(ctx context.Context, userID string) ([]models.Position, error)
	Create(ctx context.Context, userID string, in models.NewPosition) ([]models.Position, error)
	Update(ctx context.Context, userID, positionID string, upd models.PositionUpdate) ([]models.Position, error)
	Delete(ctx context.Context, userID, positionID string) error
}

type AlertEventPublisher interface {
	Publish(ctx context.Context, events []models.AlertTriggeredEvent) error
	Close() error
}

type AlertEventStore interface {
	Init(ctx context.Context) error // ensure tables
	StoreBatch(ctx context.Context, events []models.AlertTriggeredEvent) error
	Recent(ctx context.Context, userID string, limit int) ([]models.AlertTriggeredEvent, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordUpstreamRequest(provider, outcome string)
	RecordError(kind string)
	RecordLastPrice(token string, price float64)
	RecordLatency(op string, seconds float64)
	RecordAlertTriggered(alertType string)
}
