package http

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/profile"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("badge_rarity", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case badge.RarityCommon, badge.RarityUncommon, badge.RarityRare, badge.RarityEpic, badge.RarityLegendary:
				return true
			}
			return false
		})
	}
}

// Profile DTOs

type UpdateProfileRequest struct {
	Name       *string   `json:"name"`
	Bio        *string   `json:"bio"`
	Skills     *[]string `json:"skills"`
	Expertise  *[]string `json:"expertise"`
	Github     *string   `json:"github"`
	Linkedin   *string   `json:"linkedin"`
	Twitter    *string   `json:"twitter"`
	Website    *string   `json:"website"`
	ResumeURL  *string   `json:"resume_url"`
	Phone      *string   `json:"phone"`
	Location   *string   `json:"location"`
	Department *string   `json:"department"`
	Year       *string   `json:"year"`
}

type ProfileDTO struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	Expertise  []string  `json:"expertise"`
	Github     string    `json:"github"`
	Linkedin   string    `json:"linkedin"`
	Twitter    string    `json:"twitter"`
	Website    string    `json:"website"`
	ResumeURL  string    `json:"resume_url"`
	Phone      string    `json:"phone"`
	Location   string    `json:"location"`
	Department string    `json:"department"`
	Year       string    `json:"year"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:     p.UserID,
		Name:       p.Name,
		Bio:        p.Bio,
		Skills:     p.Skills,
		Expertise:  p.Expertise,
		Github:     p.Github,
		Linkedin:   p.Linkedin,
		Twitter:    p.Twitter,
		Website:    p.Website,
		ResumeURL:  p.ResumeURL,
		Phone:      p.Phone,
		Location:   p.Location,
		Department: p.Department,
		Year:       p.Year,
		UpdatedAt:  p.UpdatedAt,
	}
}

type AddSkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

// Project DTOs

type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Github      *string `json:"github"`
	DemoLink    *string `json:"demo_link"`
	Image       *string `json:"image"`
}

type UpdateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Github      *string `json:"github"`
	DemoLink    *string `json:"demo_link"`
	Image       *string `json:"image"`
}

// Publication DTOs

type CreatePublicationRequest struct {
	Title string  `json:"title" binding:"required"`
	Year  int     `json:"year" binding:"required"`
	Link  *string `json:"link"`
}

type UpdatePublicationRequest struct {
	Title string  `json:"title" binding:"required"`
	Year  int     `json:"year" binding:"required"`
	Link  *string `json:"link"`
}

// Experience DTOs

type CreateExperienceRequest struct {
	Area        string  `json:"area" binding:"required"`
	Level       string  `json:"level" binding:"required,oneof=Beginner Intermediate Advanced Expert"`
	YearsExp    float64 `json:"years_exp" binding:"gte=0"`
	Description string  `json:"description"`
}

type UpdateExperienceRequest struct {
	Area        string  `json:"area" binding:"required"`
	Level       string  `json:"level" binding:"required,oneof=Beginner Intermediate Advanced Expert"`
	YearsExp    float64 `json:"years_exp" binding:"gte=0"`
	Description string  `json:"description"`
}

// Badge DTOs

type CreateBadgeDefinitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Category    string `json:"category" binding:"required"`
	Criteria    string `json:"criteria"`
	Rarity      string `json:"rarity" binding:"required,badge_rarity"`
}

type AwardBadgeRequest struct {
	StudentID uuid.UUID  `json:"student_id" binding:"required"`
	BadgeID   uuid.UUID  `json:"badge_id" binding:"required"`
	Reason    string     `json:"reason" binding:"required"`
	ProjectID *uuid.UUID `json:"project_id"`
	EventID   *uuid.UUID `json:"event_id"`
}

// Threshold fields are pointers so an omitted field falls back to the
// default policy values instead of zero.
type SetPolicyRequest struct {
	CollegeID             uuid.UUID  `json:"college_id" binding:"required"`
	DepartmentID          *uuid.UUID `json:"department_id"`
	EventCreationRequired *int       `json:"event_creation_required" binding:"omitempty,gte=0"`
	CategoryDiversityMin  *int       `json:"category_diversity_min" binding:"omitempty,gte=0"`
	IsActive              bool       `json:"is_active"`
}

type EligibilityDTO struct {
	CanCreate          bool      `json:"can_create"`
	BadgeCount         int       `json:"badge_count"`
	Categories         []string  `json:"categories"`
	RequiredBadges     int       `json:"required_badges"`
	RequiredCategories int       `json:"required_categories"`
	LastChecked        time.Time `json:"last_checked"`
}

func ToEligibilityDTO(e *badge.Eligibility) EligibilityDTO {
	return EligibilityDTO{
		CanCreate:          e.CanCreate,
		BadgeCount:         e.BadgeCount,
		Categories:         e.Categories,
		RequiredBadges:     e.RequiredBadges,
		RequiredCategories: e.RequiredCategories,
		LastChecked:        e.LastChecked,
	}
}
