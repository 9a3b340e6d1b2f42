package experience

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/experience"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ExperienceUseCase struct {
	repo        experience.Repository
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewExperienceUseCase(r experience.Repository, pr profile.Repository, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{repo: r, profileRepo: pr, logger: log}
}

type CreateExperienceInput struct {
	UserID      uuid.UUID
	Area        string
	Level       string
	YearsExp    float64
	Description string
}

func (uc *ExperienceUseCase) CreateExperience(ctx context.Context, in CreateExperienceInput) (*experience.Experience, error) {
	if _, err := uc.profileRepo.EnsureExists(ctx, in.UserID); err != nil {
		return nil, err
	}

	e := &experience.Experience{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Area:        in.Area,
		Level:       in.Level,
		YearsExp:    in.YearsExp,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("experience validation failed", err)
	}
	if err := uc.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

type UpdateExperienceInput struct {
	ExperienceID uuid.UUID
	UserID       uuid.UUID
	Area         string
	Level        string
	YearsExp     float64
	Description  string
}

func (uc *ExperienceUseCase) UpdateExperience(ctx context.Context, in UpdateExperienceInput) (*experience.Experience, error) {
	e, err := uc.repo.FindByID(ctx, in.ExperienceID, in.UserID)
	if err != nil {
		return nil, err
	}

	e.Area = in.Area
	e.Level = in.Level
	e.YearsExp = in.YearsExp
	e.Description = in.Description

	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("experience validation failed", err)
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *ExperienceUseCase) DeleteExperience(ctx context.Context, id, userID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, userID)
}

func (uc *ExperienceUseCase) ListExperiences(ctx context.Context, userID uuid.UUID) ([]*experience.Experience, error) {
	return uc.repo.ListByUser(ctx, userID)
}
