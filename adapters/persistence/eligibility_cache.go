package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/logger"
)

// redisEligibilityCache keeps one JSON entry per user. Redis key expiry
// carries the 30-minute validity window; the embedded expires_at field is
// what callers surface.
type redisEligibilityCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisEligibilityCache(rdb *redis.Client, logger logger.Logger) badge.EligibilityCache {
	return &redisEligibilityCache{rdb: rdb, logger: logger}
}

func eligibilityKey(userID uuid.UUID) string {
	return fmt.Sprintf("badge:eligibility:%s", userID)
}

func (c *redisEligibilityCache) Get(ctx context.Context, userID uuid.UUID) (*badge.Eligibility, error) {
	raw, err := c.rdb.Get(ctx, eligibilityKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read eligibility cache: %w", err)
	}

	e := &badge.Eligibility{}
	if err := json.Unmarshal(raw, e); err != nil {
		c.logger.Warn("Dropping corrupt eligibility cache entry", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, nil
	}
	// Key expiry should make this unreachable, treat a stale entry as a miss.
	if !time.Now().UTC().Before(e.ExpiresAt) {
		return nil, nil
	}
	return e, nil
}

func (c *redisEligibilityCache) Set(ctx context.Context, userID uuid.UUID, e *badge.Eligibility, ttl time.Duration) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal eligibility entry: %w", err)
	}
	if err := c.rdb.Set(ctx, eligibilityKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write eligibility cache: %w", err)
	}
	return nil
}
