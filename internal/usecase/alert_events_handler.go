package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	pkgkafka "CryptoIntel/pkg/kafka"
	"CryptoIntel/pkg/queue"
)

// AlertEventsHandler consumes triggered alert events and appends them to the history store.
// It serves both the Kafka consumer and the Redis queue; topic doubles as the queue message type.
type AlertEventsHandler struct {
	topic   string
	store   drepo.AlertEventStore
	metrics drepo.Metrics
}

func NewAlertEventsHandler(topic string, store drepo.AlertEventStore, metrics drepo.Metrics) *AlertEventsHandler {
	return &AlertEventsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *AlertEventsHandler) Topic() string { return h.topic }

func (h *AlertEventsHandler) Name() string { return "alert_events" }

func (h *AlertEventsHandler) Type() string { return h.topic }

func (h *AlertEventsHandler) Handle(ctx context.Context, b []byte) error {
	var ev models.AlertTriggeredEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		h.recordError("consumer_unmarshal")
		return fmt.Errorf("decode alert event: %w", err)
	}
	if ev.AlertID == "" {
		h.recordError("consumer_invalid")
		return fmt.Errorf("alert event without alert_id")
	}
	if ev.TriggeredAt.IsZero() {
		ev.TriggeredAt = time.Now().UTC()
	}

	start := time.Now()
	err := h.store.StoreBatch(ctx, []models.AlertTriggeredEvent{ev})
	if h.metrics != nil {
		h.metrics.RecordLatency("alert_event_insert", time.Since(start).Seconds())
		h.metrics.RecordLatency("alert_event_e2e", time.Since(ev.TriggeredAt).Seconds())
	}
	if err != nil {
		h.recordError("consumer_store")
		return err
	}
	return nil
}

func (h *AlertEventsHandler) recordError(kind string) {
	if h.metrics != nil {
		h.metrics.RecordError(kind)
	}
}

var (
	_ pkgkafka.MessageHandler = (*AlertEventsHandler)(nil)
	_ queue.Job               = (*AlertEventsHandler)(nil)
)
