package project

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/internal/domain/project"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ProjectUseCase struct {
	repo        project.Repository
	profileRepo profile.Repository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewProjectUseCase(r project.Repository, pr profile.Repository, up service.Uploader, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{repo: r, profileRepo: pr, uploader: up, logger: log}
}

type CreateProjectInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Github      *string
	DemoLink    *string
	Image       *string
}

func (uc *ProjectUseCase) CreateProject(ctx context.Context, in CreateProjectInput) (*project.PersonalProject, error) {
	// Sub-entities require an owning profile row; create the empty one if
	// this is the user's first write.
	if _, err := uc.profileRepo.EnsureExists(ctx, in.UserID); err != nil {
		return nil, err
	}

	p := &project.PersonalProject{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Github:      in.Github,
		DemoLink:    in.DemoLink,
		Image:       in.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("project validation failed", err)
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Github      *string
	DemoLink    *string
	Image       *string
}

func (uc *ProjectUseCase) UpdateProject(ctx context.Context, in UpdateProjectInput) (*project.PersonalProject, error) {
	p, err := uc.repo.FindByID(ctx, in.ProjectID, in.UserID)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Github = in.Github
	p.DemoLink = in.DemoLink
	p.Image = in.Image

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("project validation failed", err)
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProjectUseCase) DeleteProject(ctx context.Context, id, userID uuid.UUID) error {
	return uc.repo.Delete(ctx, id, userID)
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, id, userID uuid.UUID) (*project.PersonalProject, error) {
	return uc.repo.FindByID(ctx, id, userID)
}

func (uc *ProjectUseCase) ListProjects(ctx context.Context, userID uuid.UUID) ([]*project.PersonalProject, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// UploadImage stores the file and binds the resulting URL to the project.
// Ownership is enforced by the id+user match in SetImage.
func (uc *ProjectUseCase) UploadImage(ctx context.Context, id, userID uuid.UUID, file io.Reader) (string, error) {
	url, err := uc.uploader.Upload(ctx, file, "projects", id.String())
	if err != nil {
		return "", apperror.NewInternal("failed to upload project image", err)
	}
	if err := uc.repo.SetImage(ctx, id, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
