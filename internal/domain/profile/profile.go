package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxSkills = 50

var (
	ErrSkillExists   = errors.New("skill already exists")
	ErrTooManySkills = errors.New("skill limit reached")
)

type Profile struct {
	ID         uuid.UUID `json:"id"`
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
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New returns the empty profile created lazily on first write.
func New(userID uuid.UUID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Skills:    []string{},
		Expertise: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddSkill enforces the case-insensitive uniqueness and size rules.
func (p *Profile) AddSkill(skill string) error {
	skill = strings.TrimSpace(skill)
	for _, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			return ErrSkillExists
		}
	}
	if len(p.Skills) >= MaxSkills {
		return ErrTooManySkills
	}
	p.Skills = append(p.Skills, skill)
	return nil
}

// RemoveSkill is a no-op when the skill is absent.
func (p *Profile) RemoveSkill(skill string) {
	for i, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
			return
		}
	}
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	// EnsureExists creates the empty profile row when none exists and
	// returns the stored row either way.
	EnsureExists(ctx context.Context, userID uuid.UUID) (*Profile, error)
	// SetName writes only the name column; used by the enrichment backfill.
	SetName(ctx context.Context, userID uuid.UUID, name string) error
}
