package publication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Publication struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Link      *string   `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrEmptyTitle  = errors.New("publication title must not be empty")
	ErrInvalidYear = errors.New("publication year is out of range")
)

func (p *Publication) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Year < 1900 || p.Year > time.Now().UTC().Year()+1 {
		return ErrInvalidYear
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, p *Publication) error
	Update(ctx context.Context, p *Publication) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Publication, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Publication, error)
}
