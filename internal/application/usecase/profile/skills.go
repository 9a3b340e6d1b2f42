package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
)

func (uc *ProfileUseCase) ListSkills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Skills, nil
}

func (uc *ProfileUseCase) AddSkill(ctx context.Context, userID uuid.UUID, skill string) ([]string, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperror.NewInvalidInput("skill must not be empty", nil)
	}

	p, err := uc.profileRepo.EnsureExists(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.AddSkill(skill); err != nil {
		if errors.Is(err, profile.ErrSkillExists) {
			return nil, apperror.NewConflict("skill", "name", skill)
		}
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p.Skills, nil
}

// RemoveSkill is a no-op returning the unchanged list when the skill is
// absent.
func (uc *ProfileUseCase) RemoveSkill(ctx context.Context, userID uuid.UUID, skill string) ([]string, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	before := len(p.Skills)
	p.RemoveSkill(skill)
	if len(p.Skills) == before {
		return p.Skills, nil
	}

	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p.Skills, nil
}
