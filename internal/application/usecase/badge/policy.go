package badge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type PolicyUseCase struct {
	repo   badge.PolicyRepository
	logger logger.Logger
}

func NewPolicyUseCase(r badge.PolicyRepository, log logger.Logger) *PolicyUseCase {
	return &PolicyUseCase{repo: r, logger: log}
}

type SetPolicyInput struct {
	CollegeID             uuid.UUID
	DepartmentID          *uuid.UUID
	EventCreationRequired int
	CategoryDiversityMin  int
	IsActive              bool
}

// SetPolicy upserts the single policy row of a college. Changing a policy
// does not invalidate unexpired eligibility cache entries; the staleness
// window is accepted.
func (uc *PolicyUseCase) SetPolicy(ctx context.Context, in SetPolicyInput) (*badge.Policy, error) {
	if in.EventCreationRequired < 0 || in.CategoryDiversityMin < 0 {
		return nil, apperror.NewInvalidInput("policy thresholds must not be negative", nil)
	}

	now := time.Now().UTC()
	p := &badge.Policy{
		ID:                    uuid.New(),
		CollegeID:             in.CollegeID,
		DepartmentID:          in.DepartmentID,
		EventCreationRequired: in.EventCreationRequired,
		CategoryDiversityMin:  in.CategoryDiversityMin,
		IsActive:              in.IsActive,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *PolicyUseCase) GetPolicy(ctx context.Context, collegeID uuid.UUID) (*badge.Policy, error) {
	return uc.repo.FindByCollege(ctx, collegeID)
}
