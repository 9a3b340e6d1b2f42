package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencampus/profile-service/internal/domain/project"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanProject(row pgx.Row) (*project.PersonalProject, error) {
	p := &project.PersonalProject{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&p.Github,
		&p.DemoLink,
		&p.Image,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	return p, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.PersonalProject) error {
	query := `
		INSERT INTO personal_projects (id, user_id, title, description, github, demo_link, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Github, p.DemoLink, p.Image, p.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

// Update matches on both id and user_id; a missing row and an ownership
// mismatch are indistinguishable to the caller.
func (r *postgresProjectRepo) Update(ctx context.Context, p *project.PersonalProject) error {
	query := `
		UPDATE personal_projects SET
			title = $3, description = $4, github = $5, demo_link = $6, image = $7
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Github, p.DemoLink, p.Image,
	)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM personal_projects WHERE id = $1 AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*project.PersonalProject, error) {
	query := `
		SELECT id, user_id, title, description, github, demo_link, image, created_at
		FROM personal_projects
		WHERE id = $1 AND user_id = $2
	`
	return scanProject(r.db.QueryRow(ctx, query, id, userID))
}

func (r *postgresProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.PersonalProject, error) {
	builder := psql.Select("id, user_id, title, description, github, demo_link, image, created_at").
		From("personal_projects").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list projects query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	defer rows.Close()

	projects := make([]*project.PersonalProject, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) SetImage(ctx context.Context, id uuid.UUID, userID uuid.UUID, imageURL string) error {
	query := `UPDATE personal_projects SET image = $3 WHERE id = $1 AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, userID, imageURL)
	if err != nil {
		return apperror.NewInternal("failed to set project image", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}
