package publication

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/internal/domain/publication"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type PublicationUseCase struct {
	repo        publication.Repository
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewPublicationUseCase(r publication.Repository, pr profile.Repository, log logger.Logger) *PublicationUseCase {
	return &PublicationUseCase{repo: r, profileRepo: pr, logger: log}
}

type CreatePublicationInput struct {
	UserID uuid.UUID
	Title  string
	Year   int
	Link   *string
}

func (uc *PublicationUseCase) CreatePublication(ctx context.Context, in CreatePublicationInput) (*publication.Publication, error) {
	if _, err := uc.profileRepo.EnsureExists(ctx, in.UserID); err != nil {
		return nil, err
	}

	p := &publication.Publication{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Title:     in.Title,
		Year:      in.Year,
		Link:      in.Link,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("publication validation failed", err)
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type UpdatePublicationInput struct {
	PublicationID uuid.UUID
	UserID        uuid.UUID
	Title         string
	Year          int
	Link          *string
}

func (uc *PublicationUseCase) UpdatePublication(ctx context.Context, in UpdatePublicationInput) (*publication.Publication, error) {
	p, err := uc.repo.FindByID(ctx, in.PublicationID, in.UserID)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Year = in.Year
	p.Link = in.Link

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("publication validation failed", err)
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *PublicationUseCase) DeletePublication(ctx context.Context, id, userID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, userID)
}

func (uc *PublicationUseCase) ListPublications(ctx context.Context, userID uuid.UUID) ([]*publication.Publication, error) {
	return uc.repo.ListByUser(ctx, userID)
}
