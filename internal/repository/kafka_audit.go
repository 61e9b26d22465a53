package repository

import (
	"context"
	"fmt"

	"GeoPrice/internal/domain/models"
	domrepo "GeoPrice/internal/domain/repository"
	pkgkafka "GeoPrice/pkg/kafka"
)

// KafkaAuditPublisher publishes served estimates to a Kafka topic so future
// training runs can learn from real traffic. Keys are the coordinates, which
// keeps records for one location on one partition.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) *KafkaAuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, rec models.EstimateRecord) error {
	key := []byte(fmt.Sprintf("%.6f:%.6f", rec.Latitude, rec.Longitude))
	return p.producer.Publish(ctx, p.topic, key, rec)
}

func (p *KafkaAuditPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.AuditPublisher = (*KafkaAuditPublisher)(nil)

// NoopAuditPublisher is used when the audit trail is disabled.
type NoopAuditPublisher struct{}

func (NoopAuditPublisher) Publish(context.Context, models.EstimateRecord) error { return nil }
func (NoopAuditPublisher) Close() error                                         { return nil }

var _ domrepo.AuditPublisher = NoopAuditPublisher{}
