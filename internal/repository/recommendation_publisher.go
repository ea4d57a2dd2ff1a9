package repository

import (
	"context"
	"time"

	"SpanScreener/internal/domain/models"
	domrepo "SpanScreener/internal/domain/repository"
	pkgkafka "SpanScreener/pkg/kafka"
)

// recommendationEvent is the wire shape published for every served
// recommendation.
type recommendationEvent struct {
	Symbol      string                `json:"symbol"`
	Signal      models.Signal         `json:"signal"`
	Confidence  models.Confidence     `json:"confidence"`
	Checks      []models.CheckResult  `json:"checks"`
	Metrics     models.DerivedMetrics `json:"metrics"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// KafkaRecommendationPublisher publishes served recommendations to a Kafka
// topic, keyed by ticker symbol.
type KafkaRecommendationPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaRecommendationPublisher(producer *pkgkafka.Producer, topic string) *KafkaRecommendationPublisher {
	return &KafkaRecommendationPublisher{producer: producer, topic: topic}
}

var _ domrepo.Publisher = (*KafkaRecommendationPublisher)(nil)

func (p *KafkaRecommendationPublisher) PublishRecommendation(ctx context.Context, symbol string, rec *models.Recommendation) error {
	ev := recommendationEvent{
		Symbol:      symbol,
		Signal:      rec.Signal,
		Confidence:  rec.Confidence,
		Checks:      rec.Checks,
		Metrics:     rec.Metrics,
		GeneratedAt: rec.GeneratedAt,
	}
	return p.producer.Publish(ctx, p.topic, []byte(symbol), ev)
}

func (p *KafkaRecommendationPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRecommendation(context.Context, string, *models.Recommendation) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
