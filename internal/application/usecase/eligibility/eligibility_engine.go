package eligibility

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

// CacheTTL is the accepted staleness window for a computed eligibility
// entry. A policy change does not retroactively invalidate unexpired
// entries.
const CacheTTL = 30 * time.Minute

type EligibilityUseCase struct {
	awardRepo  badge.AwardRepository
	policyRepo badge.PolicyRepository
	cache      badge.EligibilityCache
	gateway    identity.Gateway
	logger     logger.Logger
}

func NewEligibilityUseCase(
	awardRepo badge.AwardRepository,
	policyRepo badge.PolicyRepository,
	cache badge.EligibilityCache,
	gw identity.Gateway,
	log logger.Logger,
) *EligibilityUseCase {
	return &EligibilityUseCase{
		awardRepo:  awardRepo,
		policyRepo: policyRepo,
		cache:      cache,
		gateway:    gw,
		logger:     log,
	}
}

// Check returns whether the user may create platform events. An unexpired
// cache entry is returned verbatim without touching the award table. A user
// with no resolvable college gets a terminal canCreate=false result; a
// gateway failure during college resolution surfaces as unavailable.
func (uc *EligibilityUseCase) Check(ctx context.Context, userID uuid.UUID) (*badge.Eligibility, error) {
	cached, err := uc.cache.Get(ctx, userID)
	if err != nil {
		uc.logger.Warn("Eligibility cache read failed, recomputing", zap.String("user_id", userID.String()), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	user, err := uc.gateway.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, apperror.NewUnavailable("Identity Gateway", err)
	}

	now := time.Now().UTC()

	if user.CollegeID == nil {
		// Business outcome, not a system error. Not cached: the policy in
		// force cannot be determined without a college.
		return &badge.Eligibility{
			CanCreate:   false,
			Categories:  []string{},
			LastChecked: now,
		}, nil
	}

	policy, err := uc.policyRepo.FindByCollege(ctx, *user.CollegeID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		policy = badge.DefaultPolicy(*user.CollegeID)
	}

	awards, err := uc.awardRepo.ListByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, categories := tallyActive(awards)

	result := &badge.Eligibility{
		CanCreate:          count >= policy.EventCreationRequired && len(categories) >= policy.CategoryDiversityMin,
		BadgeCount:         count,
		Categories:         categories,
		RequiredBadges:     policy.EventCreationRequired,
		RequiredCategories: policy.CategoryDiversityMin,
		LastChecked:        now,
		ExpiresAt:          now.Add(CacheTTL),
	}

	if err := uc.cache.Set(ctx, userID, result, CacheTTL); err != nil {
		uc.logger.Warn("Eligibility cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return result, nil
}

// tallyActive counts awards whose definition is still active and collects
// the distinct non-empty categories among them, in first-seen order.
func tallyActive(awards []*badge.Award) (int, []string) {
	count := 0
	seen := make(map[string]struct{})
	categories := make([]string, 0)

	for _, a := range awards {
		if a.Definition == nil || !a.Definition.IsActive {
			continue
		}
		count++
		cat := a.Definition.Category
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; !ok {
			seen[cat] = struct{}{}
			categories = append(categories, cat)
		}
	}
	return count, categories
}
