package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/config"
	"github.com/opencampus/profile-service/pkg/logger"
)

// FeedClient delivers badge-award announcements to the external
// notifications feed. Used by the worker, never by request handlers.
type FeedClient struct {
	feedURL string
	client  *http.Client
	log     logger.Logger
}

func NewFeedClient(cfg config.Config, log logger.Logger) (*FeedClient, error) {
	if cfg.Notifications.FeedURL == "" {
		return nil, fmt.Errorf("notifications feed_url is not configured")
	}
	return &FeedClient{
		feedURL: cfg.Notifications.FeedURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}, nil
}

func (c *FeedClient) Deliver(ctx context.Context, payload service.BadgeAwardedPayload) error {
	body, err := json.Marshal(map[string]any{
		"type":       "badge_awarded",
		"student_id": payload.StudentID,
		"message":    payload.Message,
		"rarity":     payload.Rarity,
		"category":   payload.Category,
		"created_at": payload.AwardedAt,
	})
	if err != nil {
		return fmt.Errorf("cannot marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cannot build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification feed returned status %d", resp.StatusCode)
	}
	return nil
}
