package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/opencampus/profile-service/adapters/event"
	"github.com/opencampus/profile-service/adapters/notification"
	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/config"
	"github.com/opencampus/profile-service/pkg/logger"
)

const deliveryMaxElapsed = 2 * time.Minute

func main() {
	fmt.Println("Starting Badge Notification Worker...")

	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	feedClient, err := notification.NewFeedClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init feed client: %v", err)
	}

	// Kafka Consumer
	badgeConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicBadgeEvents,
		GroupID:  "badge-notifier-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer badgeConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicBadgeEvents)

	ctx := context.Background()
	for {
		msg, err := badgeConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload service.BadgeAwardedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(badgeConsumer, msg)
			continue
		}

		deliver(ctx, feedClient, payload)

		// Delivery is best-effort: a feed that stays down must not wedge
		// the consumer group, so the message is committed either way.
		commitMessage(badgeConsumer, msg)
	}
}

func deliver(ctx context.Context, feedClient *notification.FeedClient, payload service.BadgeAwardedPayload) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = deliveryMaxElapsed

	operation := func() error {
		return feedClient.Deliver(ctx, payload)
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		log.Printf("ERROR: Giving up feed delivery for student %s: %v", payload.StudentID, err)
		return
	}
	log.Printf("Delivered badge notification for student %s [%s]", payload.StudentID, payload.BadgeName)
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
