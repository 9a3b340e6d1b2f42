package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opencampus/profile-service/internal/domain/experience"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/internal/domain/project"
	"github.com/opencampus/profile-service/internal/domain/publication"
	"github.com/opencampus/profile-service/pkg/logger"
)

type fakeProfileRepo struct {
	stored     *profile.Profile
	getErr     error
	setNames   []string
	setNameErr error
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored != nil {
		return f.stored, nil
	}
	return profile.New(userID), nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	f.stored = p
	return nil
}

func (f *fakeProfileRepo) EnsureExists(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return f.GetByUserID(ctx, userID)
}

func (f *fakeProfileRepo) SetName(ctx context.Context, userID uuid.UUID, name string) error {
	if f.setNameErr != nil {
		return f.setNameErr
	}
	f.setNames = append(f.setNames, name)
	if f.stored != nil {
		f.stored.Name = name
	}
	return nil
}

type fakeProjectRepo struct{ items []*project.PersonalProject }

func (f *fakeProjectRepo) Save(ctx context.Context, p *project.PersonalProject) error   { return nil }
func (f *fakeProjectRepo) Update(ctx context.Context, p *project.PersonalProject) error { return nil }
func (f *fakeProjectRepo) Delete(ctx context.Context, id, userID uuid.UUID) error       { return nil }
func (f *fakeProjectRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*project.PersonalProject, error) {
	return nil, nil
}
func (f *fakeProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.PersonalProject, error) {
	return f.items, nil
}
func (f *fakeProjectRepo) SetImage(ctx context.Context, id, userID uuid.UUID, imageURL string) error {
	return nil
}

type fakePublicationRepo struct{ items []*publication.Publication }

func (f *fakePublicationRepo) Save(ctx context.Context, p *publication.Publication) error {
	return nil
}
func (f *fakePublicationRepo) Update(ctx context.Context, p *publication.Publication) error {
	return nil
}
func (f *fakePublicationRepo) Delete(ctx context.Context, id, userID uuid.UUID) error { return nil }
func (f *fakePublicationRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*publication.Publication, error) {
	return nil, nil
}
func (f *fakePublicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*publication.Publication, error) {
	return f.items, nil
}

type fakeExperienceRepo struct{ items []*experience.Experience }

func (f *fakeExperienceRepo) Save(ctx context.Context, e *experience.Experience) error   { return nil }
func (f *fakeExperienceRepo) Update(ctx context.Context, e *experience.Experience) error { return nil }
func (f *fakeExperienceRepo) Delete(ctx context.Context, id, userID uuid.UUID) error     { return nil }
func (f *fakeExperienceRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*experience.Experience, error) {
	return nil, nil
}
func (f *fakeExperienceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*experience.Experience, error) {
	return f.items, nil
}

type fakeIdentityGateway struct {
	user       *identity.User
	userErr    error
	college    *identity.College
	collegeErr error
	renames    []string
}

func (f *fakeIdentityGateway) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return f.user, f.userErr
}
func (f *fakeIdentityGateway) ListUsers(ctx context.Context) ([]identity.User, error) {
	return nil, nil
}
func (f *fakeIdentityGateway) GetCollege(ctx context.Context, id uuid.UUID) (*identity.College, error) {
	return f.college, f.collegeErr
}
func (f *fakeIdentityGateway) ListColleges(ctx context.Context) ([]identity.College, error) {
	return nil, nil
}
func (f *fakeIdentityGateway) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	f.renames = append(f.renames, name)
	return nil
}

func newEnricher(pr *fakeProfileRepo, gw identity.Gateway) *EnrichProfileUseCase {
	return NewEnrichProfileUseCase(pr, &fakeProjectRepo{}, &fakePublicationRepo{}, &fakeExperienceRepo{}, gw, logger.NewNop())
}

func TestCompose_LocalFieldsWin(t *testing.T) {
	userID := uuid.New()
	local := profile.New(userID)
	local.Name = "Local Name"
	local.Department = "CS"
	local.Bio = "local bio"

	ident := &identity.User{
		ID:         userID,
		Name:       "Gateway Name",
		Email:      "someone@campus.edu",
		Department: "EE",
		Year:       "3",
	}

	view := Compose(local, ident, nil)

	assert.Equal(t, "Local Name", view.Name)
	assert.Equal(t, "CS", view.Department)
	assert.Equal(t, "3", view.Year, "empty local year falls back to identity")
	assert.Equal(t, "someone@campus.edu", view.Email)
	assert.Equal(t, "local bio", view.Bio)
}

func TestCompose_NilIdentityServesLocalOnly(t *testing.T) {
	userID := uuid.New()
	local := profile.New(userID)
	local.Name = "Someone"

	view := Compose(local, nil, nil)

	assert.Equal(t, "Someone", view.Name)
	assert.Empty(t, view.Email)
	assert.Nil(t, view.CollegeID)
	assert.Nil(t, view.Roles)
}

func TestExecute_BackfillSurfacedWhenLocalNameMissing(t *testing.T) {
	userID := uuid.New()
	repo := &fakeProfileRepo{stored: profile.New(userID)}
	gw := &fakeIdentityGateway{user: &identity.User{ID: userID, Name: "Fresh Name"}}
	uc := newEnricher(repo, gw)

	out, err := uc.Execute(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, "Fresh Name", out.View.Name)
	if assert.NotNil(t, out.Backfill) {
		assert.Equal(t, "Fresh Name", out.Backfill.Name)
	}

	assert.NoError(t, uc.ApplyBackfill(context.Background(), out.Backfill))
	assert.Equal(t, []string{"Fresh Name"}, repo.setNames)

	// A second read finds the persisted name and surfaces no backfill.
	out2, err := uc.Execute(context.Background(), userID)
	assert.NoError(t, err)
	assert.Nil(t, out2.Backfill)
	assert.Equal(t, "Fresh Name", out2.View.Name)
}

func TestExecute_NoBackfillWhenLocalNameSet(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	stored.Name = "Already Here"
	uc := newEnricher(&fakeProfileRepo{stored: stored}, &fakeIdentityGateway{
		user: &identity.User{ID: userID, Name: "Gateway Name"},
	})

	out, err := uc.Execute(context.Background(), userID)

	assert.NoError(t, err)
	assert.Nil(t, out.Backfill)
	assert.Equal(t, "Already Here", out.View.Name)
}

func TestExecute_GatewayDownDegradesToLocal(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	stored.Name = "Offline View"
	uc := newEnricher(&fakeProfileRepo{stored: stored}, &fakeIdentityGateway{
		userErr: errors.New("connection refused"),
	})

	out, err := uc.Execute(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, "Offline View", out.View.Name)
	assert.Empty(t, out.View.Email)
	assert.Nil(t, out.Backfill)
}

func TestExecute_CollegeNameResolved(t *testing.T) {
	userID := uuid.New()
	collegeID := uuid.New()
	uc := newEnricher(&fakeProfileRepo{}, &fakeIdentityGateway{
		user:    &identity.User{ID: userID, Name: "n", CollegeID: &collegeID},
		college: &identity.College{ID: collegeID, Name: "College of Engineering"},
	})

	out, err := uc.Execute(context.Background(), userID)

	assert.NoError(t, err)
	if assert.NotNil(t, out.View.CollegeName) {
		assert.Equal(t, "College of Engineering", *out.View.CollegeName)
	}
}

func TestExecute_CollegeLookupFailureIsNonFatal(t *testing.T) {
	userID := uuid.New()
	collegeID := uuid.New()
	uc := newEnricher(&fakeProfileRepo{}, &fakeIdentityGateway{
		user:       &identity.User{ID: userID, Name: "n", CollegeID: &collegeID},
		collegeErr: errors.New("timeout"),
	})

	out, err := uc.Execute(context.Background(), userID)

	assert.NoError(t, err)
	assert.Nil(t, out.View.CollegeName)
}

func TestExecute_StoreFailurePropagates(t *testing.T) {
	uc := newEnricher(&fakeProfileRepo{getErr: errors.New("db down")}, &fakeIdentityGateway{})

	_, err := uc.Execute(context.Background(), uuid.New())

	assert.Error(t, err)
}
