package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

func newSkillsUseCase(repo *fakeProfileRepo) *ProfileUseCase {
	return NewProfileUseCase(repo, &fakeIdentityGateway{}, logger.NewNop())
}

func TestAddSkill_AppendsAndPersists(t *testing.T) {
	userID := uuid.New()
	repo := &fakeProfileRepo{stored: profile.New(userID)}
	uc := newSkillsUseCase(repo)

	skills, err := uc.AddSkill(context.Background(), userID, "Go")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Go"}, skills)
	assert.Equal(t, []string{"Go"}, repo.stored.Skills)
}

func TestAddSkill_DuplicateIsCaseInsensitive(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	stored.Skills = []string{"Go"}
	uc := newSkillsUseCase(&fakeProfileRepo{stored: stored})

	_, err := uc.AddSkill(context.Background(), userID, "gO")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestAddSkill_LimitEnforced(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	for i := 0; i < profile.MaxSkills; i++ {
		stored.Skills = append(stored.Skills, fmt.Sprintf("skill-%d", i))
	}
	uc := newSkillsUseCase(&fakeProfileRepo{stored: stored})

	_, err := uc.AddSkill(context.Background(), userID, "one-too-many")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Len(t, stored.Skills, profile.MaxSkills)
}

func TestAddSkill_EmptyRejected(t *testing.T) {
	uc := newSkillsUseCase(&fakeProfileRepo{})

	_, err := uc.AddSkill(context.Background(), uuid.New(), "")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestAddSkill_WhitespaceOnlyRejected(t *testing.T) {
	userID := uuid.New()
	repo := &fakeProfileRepo{stored: profile.New(userID)}
	uc := newSkillsUseCase(repo)

	_, err := uc.AddSkill(context.Background(), userID, "   ")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Empty(t, repo.stored.Skills)
}

func TestAddSkill_TrimsSurroundingSpace(t *testing.T) {
	userID := uuid.New()
	repo := &fakeProfileRepo{stored: profile.New(userID)}
	uc := newSkillsUseCase(repo)

	skills, err := uc.AddSkill(context.Background(), userID, "  Go  ")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Go"}, skills)
}

func TestRemoveSkill_Removes(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	stored.Skills = []string{"Go", "SQL"}
	uc := newSkillsUseCase(&fakeProfileRepo{stored: stored})

	skills, err := uc.RemoveSkill(context.Background(), userID, "go")

	assert.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, skills)
}

func TestRemoveSkill_AbsentIsNoOp(t *testing.T) {
	userID := uuid.New()
	stored := profile.New(userID)
	stored.Skills = []string{"Go"}
	uc := newSkillsUseCase(&fakeProfileRepo{stored: stored})

	skills, err := uc.RemoveSkill(context.Background(), userID, "Rust")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Go"}, skills)
}
