package badge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type DefinitionUseCase struct {
	repo   badge.DefinitionRepository
	logger logger.Logger
}

func NewDefinitionUseCase(r badge.DefinitionRepository, log logger.Logger) *DefinitionUseCase {
	return &DefinitionUseCase{repo: r, logger: log}
}

type CreateDefinitionInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Category    string
	Criteria    string
	Rarity      string
	CreatedBy   uuid.UUID
}

func (uc *DefinitionUseCase) CreateDefinition(ctx context.Context, in CreateDefinitionInput) (*badge.Definition, error) {
	d := &badge.Definition{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		Category:    in.Category,
		Criteria:    in.Criteria,
		Rarity:      in.Rarity,
		CreatedBy:   in.CreatedBy,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := d.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("badge definition validation failed", err)
	}
	if err := uc.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *DefinitionUseCase) ListDefinitions(ctx context.Context) ([]*badge.Definition, error) {
	return uc.repo.ListActive(ctx)
}
