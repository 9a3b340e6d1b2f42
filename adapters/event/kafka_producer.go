package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/config"
	"github.com/opencampus/profile-service/pkg/logger"
)

const TopicBadgeEvents = "badge.events"

type KafkaProducerClient struct {
	BadgeEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	badgeWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicBadgeEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{BadgeEventsWriter: badgeWriter}, nil
}

func (c *KafkaProducerClient) PublishBadgeAwarded(ctx context.Context, payload service.BadgeAwardedPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal badge event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.StudentID.String()),
		Value: value,
	}
	if err := c.BadgeEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("cannot publish badge event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.BadgeEventsWriter != nil {
		c.BadgeEventsWriter.Close()
	}
}

// NoopPublisher is wired in when the notification feature flag is off.
type NoopPublisher struct{}

func (NoopPublisher) PublishBadgeAwarded(ctx context.Context, payload service.BadgeAwardedPayload) error {
	return nil
}
