package badge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rarity grades a badge definition. The grade carries no numeric weight in
// award or eligibility logic.
const (
	RarityCommon    = "COMMON"
	RarityUncommon  = "UNCOMMON"
	RarityRare      = "RARE"
	RarityEpic      = "EPIC"
	RarityLegendary = "LEGENDARY"
)

var ErrInvalidRarity = errors.New("rarity must be one of COMMON, UNCOMMON, RARE, EPIC, LEGENDARY")

// Definition is an immutable catalog entry.
type Definition struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	Criteria    string    `json:"criteria"`
	Rarity      string    `json:"rarity"`
	CreatedBy   uuid.UUID `json:"created_by"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d *Definition) Validate() error {
	switch d.Rarity {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return nil
	default:
		return ErrInvalidRarity
	}
}

// Award joins a student and a definition. Rows are append-only.
type Award struct {
	ID            uuid.UUID  `json:"id"`
	StudentID     uuid.UUID  `json:"student_id"`
	BadgeID       uuid.UUID  `json:"badge_id"`
	AwardedBy     uuid.UUID  `json:"awarded_by"`
	AwardedByName string     `json:"awarded_by_name"`
	Reason        string     `json:"reason"`
	ProjectID     *uuid.UUID `json:"project_id"`
	EventID       *uuid.UUID `json:"event_id"`
	AwardedAt     time.Time  `json:"awarded_at"`

	// Definition is hydrated on reads that join the catalog.
	Definition *Definition `json:"definition,omitempty"`
}

type DefinitionRepository interface {
	Save(ctx context.Context, d *Definition) error
	FindByID(ctx context.Context, id uuid.UUID) (*Definition, error)
	ListActive(ctx context.Context) ([]*Definition, error)
}

type AwardRepository interface {
	Save(ctx context.Context, a *Award) error
	// ListByStudent returns awards joined to their definitions, newest first.
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*Award, error)
	// ListAll returns every award joined to its definition, for export.
	ListAll(ctx context.Context) ([]*Award, error)
}
