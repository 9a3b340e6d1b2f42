package badge

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type fakeAwardRepo struct {
	saved []*badge.Award
	err   error
}

func (f *fakeAwardRepo) Save(ctx context.Context, a *badge.Award) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeAwardRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*badge.Award, error) {
	return f.saved, nil
}

func (f *fakeAwardRepo) ListAll(ctx context.Context) ([]*badge.Award, error) {
	return f.saved, nil
}

type fakeDefinitionRepo struct {
	def *badge.Definition
	err error
}

func (f *fakeDefinitionRepo) Save(ctx context.Context, d *badge.Definition) error { return nil }

func (f *fakeDefinitionRepo) FindByID(ctx context.Context, id uuid.UUID) (*badge.Definition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.def, nil
}

func (f *fakeDefinitionRepo) ListActive(ctx context.Context) ([]*badge.Definition, error) {
	return []*badge.Definition{f.def}, nil
}

type fakeProfileRepo struct{ ensured []uuid.UUID }

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return profile.New(userID), nil
}
func (f *fakeProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error { return nil }
func (f *fakeProfileRepo) EnsureExists(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	f.ensured = append(f.ensured, userID)
	return profile.New(userID), nil
}
func (f *fakeProfileRepo) SetName(ctx context.Context, userID uuid.UUID, name string) error {
	return nil
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

type capturingPublisher struct {
	published []service.BadgeAwardedPayload
	err       error
}

func (p *capturingPublisher) PublishBadgeAwarded(ctx context.Context, payload service.BadgeAwardedPayload) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload)
	return nil
}

func testDefinition() *badge.Definition {
	return &badge.Definition{
		ID:       uuid.New(),
		Name:     "Hackathon Winner",
		Category: "COMPETITION",
		Rarity:   badge.RarityEpic,
		IsActive: true,
	}
}

func TestAwardBadge_Succeeds(t *testing.T) {
	def := testDefinition()
	awardRepo := &fakeAwardRepo{}
	profileRepo := &fakeProfileRepo{}
	publisher := &capturingPublisher{}
	studentID := uuid.New()

	uc := NewAwardBadgeUseCase(
		awardRepo,
		&fakeDefinitionRepo{def: def},
		profileRepo,
		&fakeGateway{user: &identity.User{ID: studentID, Name: "Quinn Vo"}},
		publisher,
		logger.NewNop(),
	)

	award, err := uc.Execute(context.Background(), AwardBadgeInput{
		StudentID: studentID,
		BadgeID:   def.ID,
		AwardedBy: uuid.New(),
		Reason:    "won spring hackathon",
	})

	assert.NoError(t, err)
	assert.Len(t, awardRepo.saved, 1)
	assert.Equal(t, def, award.Definition)
	assert.Equal(t, []uuid.UUID{studentID}, profileRepo.ensured)

	if assert.Len(t, publisher.published, 1) {
		payload := publisher.published[0]
		assert.Equal(t, "badge_awarded", payload.EventType)
		assert.Equal(t, "epic", payload.Rarity)
		assert.Contains(t, payload.Message, "Quinn Vo")
		assert.Contains(t, payload.Message, "Hackathon Winner")
	}
}

func TestAwardBadge_StudentMissingUpstream(t *testing.T) {
	awardRepo := &fakeAwardRepo{}
	uc := NewAwardBadgeUseCase(
		awardRepo,
		&fakeDefinitionRepo{def: testDefinition()},
		&fakeProfileRepo{},
		&fakeGateway{err: identity.ErrUserNotFound},
		&capturingPublisher{},
		logger.NewNop(),
	)

	_, err := uc.Execute(context.Background(), AwardBadgeInput{
		StudentID: uuid.New(),
		BadgeID:   uuid.New(),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Empty(t, awardRepo.saved, "nothing persists when the target is missing")
}

func TestAwardBadge_GatewayDownIsUnavailable(t *testing.T) {
	awardRepo := &fakeAwardRepo{}
	uc := NewAwardBadgeUseCase(
		awardRepo,
		&fakeDefinitionRepo{def: testDefinition()},
		&fakeProfileRepo{},
		&fakeGateway{err: errors.New("connection refused")},
		&capturingPublisher{},
		logger.NewNop(),
	)

	_, err := uc.Execute(context.Background(), AwardBadgeInput{
		StudentID: uuid.New(),
		BadgeID:   uuid.New(),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUnavailable))
	assert.Empty(t, awardRepo.saved)
}

func TestAwardBadge_UnknownDefinition(t *testing.T) {
	awardRepo := &fakeAwardRepo{}
	badgeID := uuid.New()
	uc := NewAwardBadgeUseCase(
		awardRepo,
		&fakeDefinitionRepo{err: apperror.NewNotFound("badge definition", badgeID.String())},
		&fakeProfileRepo{},
		&fakeGateway{user: &identity.User{ID: uuid.New()}},
		&capturingPublisher{},
		logger.NewNop(),
	)

	_, err := uc.Execute(context.Background(), AwardBadgeInput{
		StudentID: uuid.New(),
		BadgeID:   badgeID,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Empty(t, awardRepo.saved)
}

func TestAwardBadge_PublishFailureDoesNotFailAward(t *testing.T) {
	def := testDefinition()
	awardRepo := &fakeAwardRepo{}
	studentID := uuid.New()

	uc := NewAwardBadgeUseCase(
		awardRepo,
		&fakeDefinitionRepo{def: def},
		&fakeProfileRepo{},
		&fakeGateway{user: &identity.User{ID: studentID}},
		&capturingPublisher{err: errors.New("kafka down")},
		logger.NewNop(),
	)

	award, err := uc.Execute(context.Background(), AwardBadgeInput{
		StudentID: studentID,
		BadgeID:   def.ID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, award)
	assert.Len(t, awardRepo.saved, 1)
}
