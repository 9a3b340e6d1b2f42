package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	gateway     identity.Gateway
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, gw identity.Gateway, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: repo, gateway: gw, logger: log}
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfileInput carries partial-update semantics: nil means "keep the
// stored value", a pointer to the zero value clears the field.
type UpdateProfileInput struct {
	UserID     uuid.UUID
	Name       *string
	Bio        *string
	Skills     *[]string
	Expertise  *[]string
	Github     *string
	Linkedin   *string
	Twitter    *string
	Website    *string
	ResumeURL  *string
	Phone      *string
	Location   *string
	Department *string
	Year       *string
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	nameChanged := false
	if in.Name != nil && *in.Name != p.Name {
		p.Name = *in.Name
		nameChanged = true
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Skills != nil {
		p.Skills = *in.Skills
	}
	if in.Expertise != nil {
		p.Expertise = *in.Expertise
	}
	if in.Github != nil {
		p.Github = *in.Github
	}
	if in.Linkedin != nil {
		p.Linkedin = *in.Linkedin
	}
	if in.Twitter != nil {
		p.Twitter = *in.Twitter
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.ResumeURL != nil {
		p.ResumeURL = *in.ResumeURL
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Department != nil {
		p.Department = *in.Department
	}
	if in.Year != nil {
		p.Year = *in.Year
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	// Best-effort push of the new display name back to the auth service.
	if nameChanged && p.Name != "" {
		if err := uc.gateway.UpdateUserName(ctx, p.UserID, p.Name); err != nil {
			uc.logger.Warn("Failed to propagate display name to Identity Gateway",
				zap.String("user_id", p.UserID.String()), zap.Error(err))
		}
	}

	return p, nil
}
