package badge

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default thresholds used when a college has no policy row.
const (
	DefaultEventCreationRequired = 8
	DefaultCategoryDiversityMin  = 4
)

// Policy holds the per-college eligibility thresholds. One policy per college.
type Policy struct {
	ID                    uuid.UUID  `json:"id"`
	CollegeID             uuid.UUID  `json:"college_id"`
	DepartmentID          *uuid.UUID `json:"department_id"`
	EventCreationRequired int        `json:"event_creation_required"`
	CategoryDiversityMin  int        `json:"category_diversity_min"`
	IsActive              bool       `json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func DefaultPolicy(collegeID uuid.UUID) *Policy {
	return &Policy{
		CollegeID:             collegeID,
		EventCreationRequired: DefaultEventCreationRequired,
		CategoryDiversityMin:  DefaultCategoryDiversityMin,
		IsActive:              true,
	}
}

type PolicyRepository interface {
	Upsert(ctx context.Context, p *Policy) error
	FindByCollege(ctx context.Context, collegeID uuid.UUID) (*Policy, error)
}

// Eligibility is the derived capability flag. It is always recomputable from
// the award, definition and policy tables; the cached copy is only trusted
// while unexpired.
type Eligibility struct {
	CanCreate          bool      `json:"can_create"`
	BadgeCount         int       `json:"badge_count"`
	Categories         []string  `json:"categories"`
	RequiredBadges     int       `json:"required_badges"`
	RequiredCategories int       `json:"required_categories"`
	LastChecked        time.Time `json:"last_checked"`
	ExpiresAt          time.Time `json:"expires_at"`
}

// EligibilityCache stores one entry per user with an expiry. Get must not
// return expired entries.
type EligibilityCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Eligibility, error)
	Set(ctx context.Context, userID uuid.UUID, e *Eligibility, ttl time.Duration) error
}
