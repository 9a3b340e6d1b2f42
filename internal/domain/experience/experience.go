package experience

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

type Experience struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Area        string    `json:"area"`
	Level       string    `json:"level"`
	YearsExp    float64   `json:"years_exp"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrEmptyArea    = errors.New("experience area must not be empty")
	ErrInvalidLevel = errors.New("experience level must be one of Beginner, Intermediate, Advanced, Expert")
)

func (e *Experience) Validate() error {
	if e.Area == "" {
		return ErrEmptyArea
	}
	switch e.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return nil
	default:
		return ErrInvalidLevel
	}
}

type Repository interface {
	Save(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Experience, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Experience, error)
}
