package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type fakeAwardRepo struct {
	awards []*badge.Award
	err    error
	calls  int
}

func (f *fakeAwardRepo) Save(ctx context.Context, a *badge.Award) error { return nil }

func (f *fakeAwardRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*badge.Award, error) {
	f.calls++
	return f.awards, f.err
}

func (f *fakeAwardRepo) ListAll(ctx context.Context) ([]*badge.Award, error) {
	return f.awards, f.err
}

type fakePolicyRepo struct {
	policy *badge.Policy
	err    error
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, p *badge.Policy) error { return nil }

func (f *fakePolicyRepo) FindByCollege(ctx context.Context, collegeID uuid.UUID) (*badge.Policy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policy, nil
}

type fakeCache struct {
	entry  *badge.Eligibility
	getErr error
	setErr error
	stored *badge.Eligibility
}

func (f *fakeCache) Get(ctx context.Context, userID uuid.UUID) (*badge.Eligibility, error) {
	return f.entry, f.getErr
}

func (f *fakeCache) Set(ctx context.Context, userID uuid.UUID, e *badge.Eligibility, ttl time.Duration) error {
	f.stored = e
	return f.setErr
}

type fakeGateway struct {
	user *identity.User
	err  error
}

func (f *fakeGateway) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return f.user, f.err
}
func (f *fakeGateway) ListUsers(ctx context.Context) ([]identity.User, error) { return nil, nil }
func (f *fakeGateway) GetCollege(ctx context.Context, id uuid.UUID) (*identity.College, error) {
	return nil, nil
}
func (f *fakeGateway) ListColleges(ctx context.Context) ([]identity.College, error) {
	return nil, nil
}
func (f *fakeGateway) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	return nil
}

func awardIn(category string) *badge.Award {
	return &badge.Award{
		ID:        uuid.New(),
		BadgeID:   uuid.New(),
		Definition: &badge.Definition{
			ID:       uuid.New(),
			Category: category,
			IsActive: true,
		},
	}
}

func newEngine(ar badge.AwardRepository, pr badge.PolicyRepository, c badge.EligibilityCache, gw identity.Gateway) *EligibilityUseCase {
	return NewEligibilityUseCase(ar, pr, c, gw, logger.NewNop())
}

func TestCheck_MeetsDefaultThresholds(t *testing.T) {
	collegeID := uuid.New()
	awards := []*badge.Award{
		awardIn("TECHNICAL"), awardIn("TECHNICAL"), awardIn("RESEARCH"),
		awardIn("LEADERSHIP"), awardIn("COMMUNITY"), awardIn("ACADEMIC"),
		awardIn("TECHNICAL"), awardIn("RESEARCH"),
	}
	cache := &fakeCache{}
	uc := newEngine(
		&fakeAwardRepo{awards: awards},
		&fakePolicyRepo{err: apperror.NewNotFound("badge policy", collegeID.String())},
		cache,
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.True(t, e.CanCreate)
	assert.Equal(t, 8, e.BadgeCount)
	assert.Len(t, e.Categories, 5)
	assert.Equal(t, badge.DefaultEventCreationRequired, e.RequiredBadges)
	assert.Equal(t, badge.DefaultCategoryDiversityMin, e.RequiredCategories)
	assert.NotNil(t, cache.stored, "computed result should be cached")
}

func TestCheck_FailsCategoryDiversity(t *testing.T) {
	collegeID := uuid.New()
	// Eight badges but only three distinct categories.
	awards := []*badge.Award{
		awardIn("TECHNICAL"), awardIn("TECHNICAL"), awardIn("TECHNICAL"),
		awardIn("RESEARCH"), awardIn("RESEARCH"), awardIn("RESEARCH"),
		awardIn("ACADEMIC"), awardIn("ACADEMIC"),
	}
	uc := newEngine(
		&fakeAwardRepo{awards: awards},
		&fakePolicyRepo{err: apperror.NewNotFound("badge policy", collegeID.String())},
		&fakeCache{},
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.False(t, e.CanCreate)
	assert.Equal(t, 8, e.BadgeCount)
	assert.Len(t, e.Categories, 3)
}

func TestCheck_CollegePolicyOverridesDefaults(t *testing.T) {
	collegeID := uuid.New()
	awards := []*badge.Award{awardIn("TECHNICAL"), awardIn("RESEARCH")}
	uc := newEngine(
		&fakeAwardRepo{awards: awards},
		&fakePolicyRepo{policy: &badge.Policy{
			CollegeID:             collegeID,
			EventCreationRequired: 2,
			CategoryDiversityMin:  2,
			IsActive:              true,
		}},
		&fakeCache{},
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.True(t, e.CanCreate)
	assert.Equal(t, 2, e.RequiredBadges)
	assert.Equal(t, 2, e.RequiredCategories)
}

func TestCheck_InactiveDefinitionsExcluded(t *testing.T) {
	collegeID := uuid.New()
	retired := awardIn("TECHNICAL")
	retired.Definition.IsActive = false
	awards := []*badge.Award{retired, awardIn("RESEARCH")}

	uc := newEngine(
		&fakeAwardRepo{awards: awards},
		&fakePolicyRepo{err: apperror.NewNotFound("badge policy", collegeID.String())},
		&fakeCache{},
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, 1, e.BadgeCount)
	assert.Equal(t, []string{"RESEARCH"}, e.Categories)
}

func TestCheck_CacheHitSkipsRecompute(t *testing.T) {
	cachedEntry := &badge.Eligibility{
		CanCreate:          true,
		BadgeCount:         9,
		Categories:         []string{"TECHNICAL", "RESEARCH", "ACADEMIC", "COMMUNITY"},
		RequiredBadges:     8,
		RequiredCategories: 4,
		LastChecked:        time.Now().UTC(),
		ExpiresAt:          time.Now().UTC().Add(10 * time.Minute),
	}
	awardRepo := &fakeAwardRepo{}
	uc := newEngine(awardRepo, &fakePolicyRepo{}, &fakeCache{entry: cachedEntry}, &fakeGateway{})

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, cachedEntry, e)
	assert.Zero(t, awardRepo.calls, "cache hit must not touch the award table")
}

func TestCheck_CacheReadFailureRecomputes(t *testing.T) {
	collegeID := uuid.New()
	awardRepo := &fakeAwardRepo{awards: []*badge.Award{awardIn("TECHNICAL")}}
	uc := newEngine(
		awardRepo,
		&fakePolicyRepo{err: apperror.NewNotFound("badge policy", collegeID.String())},
		&fakeCache{getErr: errors.New("redis down")},
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, 1, awardRepo.calls)
	assert.False(t, e.CanCreate)
}

func TestCheck_NoCollegeIsTerminalAndUncached(t *testing.T) {
	cache := &fakeCache{}
	uc := newEngine(&fakeAwardRepo{}, &fakePolicyRepo{}, cache, &fakeGateway{
		user: &identity.User{ID: uuid.New(), CollegeID: nil},
	})

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.False(t, e.CanCreate)
	assert.Empty(t, e.Categories)
	assert.Nil(t, cache.stored, "no-college outcome must not be cached")
}

func TestCheck_UserMissingUpstream(t *testing.T) {
	uc := newEngine(&fakeAwardRepo{}, &fakePolicyRepo{}, &fakeCache{}, &fakeGateway{
		err: identity.ErrUserNotFound,
	})

	_, err := uc.Check(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestCheck_GatewayDownIsUnavailable(t *testing.T) {
	uc := newEngine(&fakeAwardRepo{}, &fakePolicyRepo{}, &fakeCache{}, &fakeGateway{
		err: errors.New("connection refused"),
	})

	_, err := uc.Check(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnavailable))
}

func TestCheck_CacheWriteFailureDoesNotFail(t *testing.T) {
	collegeID := uuid.New()
	uc := newEngine(
		&fakeAwardRepo{awards: []*badge.Award{awardIn("TECHNICAL")}},
		&fakePolicyRepo{err: apperror.NewNotFound("badge policy", collegeID.String())},
		&fakeCache{setErr: errors.New("redis down")},
		&fakeGateway{user: &identity.User{ID: uuid.New(), CollegeID: &collegeID}},
	)

	e, err := uc.Check(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.NotNil(t, e)
}
