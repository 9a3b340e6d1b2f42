package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type postgresPolicyRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPolicyRepo(db *pgxpool.Pool, logger logger.Logger) badge.PolicyRepository {
	return &postgresPolicyRepo{db: db, logger: logger}
}

// Upsert keys on college_id; one policy per college.
func (r *postgresPolicyRepo) Upsert(ctx context.Context, p *badge.Policy) error {
	query := `
		INSERT INTO badge_policies (id, college_id, department_id, event_creation_required, category_diversity_min, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (college_id) DO UPDATE SET
			department_id = EXCLUDED.department_id,
			event_creation_required = EXCLUDED.event_creation_required,
			category_diversity_min = EXCLUDED.category_diversity_min,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.CollegeID, p.DepartmentID,
		p.EventCreationRequired, p.CategoryDiversityMin, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert badge policy", err)
	}
	return nil
}

func (r *postgresPolicyRepo) FindByCollege(ctx context.Context, collegeID uuid.UUID) (*badge.Policy, error) {
	query := `
		SELECT id, college_id, department_id, event_creation_required, category_diversity_min, is_active, created_at, updated_at
		FROM badge_policies
		WHERE college_id = $1
	`
	p := &badge.Policy{}
	err := r.db.QueryRow(ctx, query, collegeID).Scan(
		&p.ID, &p.CollegeID, &p.DepartmentID,
		&p.EventCreationRequired, &p.CategoryDiversityMin, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("badge policy", collegeID.String())
		}
		return nil, apperror.NewInternal("failed to query badge policy", err)
	}
	return p, nil
}
