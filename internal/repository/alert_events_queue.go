package repository

import (
	"context"
	"fmt"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/pkg/queue"
)

// QueueAlertPublisher pushes triggered alert events onto the Redis work queue,
// one message per event, when Kafka is not configured.
type QueueAlertPublisher struct {
	q       queue.Publisher
	msgType string
}

func NewQueueAlertPublisher(q queue.Publisher, msgType string) *QueueAlertPublisher {
	return &QueueAlertPublisher{q: q, msgType: msgType}
}

func (p *QueueAlertPublisher) Publish(ctx context.Context, events []models.AlertTriggeredEvent) error {
	for _, e := range events {
		if err := p.q.Enqueue(ctx, p.msgType, e); err != nil {
			return fmt.Errorf("enqueue alert event %s: %w", e.EventID, err)
		}
	}
	return nil
}

// Close is a no-op; the queue is stopped by the application.
func (p *QueueAlertPublisher) Close() error { return nil }

var _ drepo.AlertEventPublisher = (*QueueAlertPublisher)(nil)
