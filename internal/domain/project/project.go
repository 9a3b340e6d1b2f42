package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PersonalProject is a portfolio entry owned by exactly one profile.
type PersonalProject struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Github      *string   `json:"github"`
	DemoLink    *string   `json:"demo_link"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrEmptyTitle = errors.New("project title must not be empty")

func (p *PersonalProject) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, p *PersonalProject) error
	Update(ctx context.Context, p *PersonalProject) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*PersonalProject, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PersonalProject, error)
	SetImage(ctx context.Context, id uuid.UUID, userID uuid.UUID, imageURL string) error
}
