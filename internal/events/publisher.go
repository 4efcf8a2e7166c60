package events

import (
	"context"
	"fmt"

	"dopo/pkg/kafka"
	kafka_config "dopo/pkg/kafka/config"
	kafka_middleware "dopo/pkg/kafka/middleware"
	"dopo/pkg/logger"
	"dopo/pkg/middleware"
)

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer messageProducer
	source   string
	log      *logger.Logger
}

// NewPublisher returns a Kafka backed publisher when brokers are configured
// and a no-op publisher otherwise.
func NewPublisher(cfg *kafka_config.Config, source string, log *logger.Logger) (Publisher, error) {
	if cfg == nil || !cfg.Enabled() {
		log.Info("Kafka brokers not configured, domain events disabled")
		return NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
	}

	log.Info("Domain events enabled", "topic", producer.Topic())
	return newKafkaPublisher(producer, source, log), nil
}

func newKafkaPublisher(producer messageProducer, source string, log *logger.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventType(event.Type).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", event.Type, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
