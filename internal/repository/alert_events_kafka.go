package repository

import (
	"context"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	pkgkafka "CryptoIntel/pkg/kafka"
)

// KafkaAlertPublisher emits triggered alert events, keyed by alert id.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, events []models.AlertTriggeredEvent) error {
	switch len(events) {
	case 0:
		return nil
	case 1:
		e := events[0]
		return p.producer.Publish(ctx, p.topic, []byte(e.AlertID), e, e.EventID)
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, e := range events {
		msgs[i] = pkgkafka.Message{Key: []byte(e.AlertID), Value: e}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ drepo.AlertEventPublisher = (*KafkaAlertPublisher)(nil)
