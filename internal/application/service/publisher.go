package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BadgeAwardedPayload is the wire format for badge-award announcements.
// Rarity is lower-cased for the notification feed.
type BadgeAwardedPayload struct {
	EventType     string     `json:"event_type"`
	StudentID     uuid.UUID  `json:"student_id"`
	BadgeID       uuid.UUID  `json:"badge_id"`
	BadgeName     string     `json:"badge_name"`
	Rarity        string     `json:"rarity"`
	Category      string     `json:"category"`
	Message       string     `json:"message"`
	AwardedBy     uuid.UUID  `json:"awarded_by"`
	AwardedByName string     `json:"awarded_by_name"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	EventID       *uuid.UUID `json:"event_id,omitempty"`
	AwardedAt     time.Time  `json:"awarded_at"`
}

// AwardEventPublisher emits badge-award announcements. Implementations must
// be safe to call from request handlers; failures are the caller's to log
// and swallow.
type AwardEventPublisher interface {
	PublishBadgeAwarded(ctx context.Context, payload BadgeAwardedPayload) error
}
