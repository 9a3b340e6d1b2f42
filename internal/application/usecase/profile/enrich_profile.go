package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/domain/experience"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/internal/domain/project"
	"github.com/opencampus/profile-service/internal/domain/publication"
	"github.com/opencampus/profile-service/pkg/logger"
)

// EnrichedProfile is the denormalized view merging the stored profile with
// identity attributes. Precedence per field is fixed in Compose.
type EnrichedProfile struct {
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AvatarURL   string     `json:"avatar_url"`
	Roles       []string   `json:"roles"`
	JoinedAt    *time.Time `json:"joined_at"`
	CollegeID   *uuid.UUID `json:"college_id"`
	CollegeName *string    `json:"college_name"`
	Department  string     `json:"department"`
	Year        string     `json:"year"`

	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
	Expertise []string `json:"expertise"`
	Github    string   `json:"github"`
	Linkedin  string   `json:"linkedin"`
	Twitter   string   `json:"twitter"`
	Website   string   `json:"website"`
	ResumeURL string   `json:"resume_url"`
	Phone     string   `json:"phone"`
	Location  string   `json:"location"`

	Projects     []*project.PersonalProject `json:"projects"`
	Publications []*publication.Publication `json:"publications"`
	Experiences  []*experience.Experience   `json:"experiences"`
}

// Compose is the pure projection of a stored profile and an identity record
// into one view. Local fields win for name, department and year when
// non-empty; avatar, email, roles and joined_at only exist upstream and pass
// through; everything else is local-only. ident and collegeName may be nil
// when the gateway was unreachable.
func Compose(local *profile.Profile, ident *identity.User, collegeName *string) EnrichedProfile {
	view := EnrichedProfile{
		UserID:     local.UserID,
		Name:       local.Name,
		Department: local.Department,
		Year:       local.Year,
		Bio:        local.Bio,
		Skills:     local.Skills,
		Expertise:  local.Expertise,
		Github:     local.Github,
		Linkedin:   local.Linkedin,
		Twitter:    local.Twitter,
		Website:    local.Website,
		ResumeURL:  local.ResumeURL,
		Phone:      local.Phone,
		Location:   local.Location,
	}

	if ident != nil {
		if view.Name == "" {
			view.Name = ident.Name
		}
		if view.Department == "" {
			view.Department = ident.Department
		}
		if view.Year == "" {
			view.Year = ident.Year
		}
		view.Email = ident.Email
		view.AvatarURL = ident.AvatarURL
		view.Roles = ident.Roles
		view.JoinedAt = ident.JoinedAt
		view.CollegeID = ident.CollegeID
		view.CollegeName = collegeName
	}

	return view
}

// NameBackfill is the pending write-back surfaced by Execute. The handler
// applies it after responding logic is settled; skipping it never changes
// the read result.
type NameBackfill struct {
	UserID uuid.UUID
	Name   string
}

type EnrichProfileUseCase struct {
	profileRepo     profile.Repository
	projectRepo     project.Repository
	publicationRepo publication.Repository
	experienceRepo  experience.Repository
	gateway         identity.Gateway
	logger          logger.Logger
}

func NewEnrichProfileUseCase(
	profileRepo profile.Repository,
	projectRepo project.Repository,
	publicationRepo publication.Repository,
	experienceRepo experience.Repository,
	gw identity.Gateway,
	log logger.Logger,
) *EnrichProfileUseCase {
	return &EnrichProfileUseCase{
		profileRepo:     profileRepo,
		projectRepo:     projectRepo,
		publicationRepo: publicationRepo,
		experienceRepo:  experienceRepo,
		gateway:         gw,
		logger:          log,
	}
}

type EnrichProfileOutput struct {
	View EnrichedProfile
	// Backfill is non-nil when the stored profile is missing a name the
	// identity record can supply.
	Backfill *NameBackfill
}

// Execute builds the enriched view. Gateway failures degrade to
// profile-only data; a store failure propagates.
func (uc *EnrichProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*EnrichProfileOutput, error) {
	local, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	local.Skills = nonNil(local.Skills)
	local.Expertise = nonNil(local.Expertise)

	ident, err := uc.gateway.GetUser(ctx, userID)
	if err != nil {
		uc.logger.Warn("Identity Gateway lookup failed, serving profile-only view",
			zap.String("user_id", userID.String()), zap.Error(err))
		ident = nil
	}

	var collegeName *string
	if ident != nil && ident.CollegeID != nil {
		college, err := uc.gateway.GetCollege(ctx, *ident.CollegeID)
		if err != nil {
			uc.logger.Warn("College lookup failed", zap.String("college_id", ident.CollegeID.String()), zap.Error(err))
		} else {
			collegeName = &college.Name
		}
	}

	out := &EnrichProfileOutput{View: Compose(local, ident, collegeName)}
	if ident != nil && ident.Name != "" && local.Name == "" {
		out.Backfill = &NameBackfill{UserID: userID, Name: ident.Name}
	}

	if projects, err := uc.projectRepo.ListByUser(ctx, userID); err == nil {
		out.View.Projects = projects
	} else {
		return nil, err
	}
	if pubs, err := uc.publicationRepo.ListByUser(ctx, userID); err == nil {
		out.View.Publications = pubs
	} else {
		return nil, err
	}
	if exps, err := uc.experienceRepo.ListByUser(ctx, userID); err == nil {
		out.View.Experiences = exps
	} else {
		return nil, err
	}

	return out, nil
}

// ApplyBackfill persists the lazy name write-back. Idempotent per identity
// snapshot; failures are logged by the caller and never affect the read.
func (uc *EnrichProfileUseCase) ApplyBackfill(ctx context.Context, bf *NameBackfill) error {
	if bf == nil {
		return nil
	}
	return uc.profileRepo.SetName(ctx, bf.UserID, bf.Name)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
