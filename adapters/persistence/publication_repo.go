package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencampus/profile-service/internal/domain/publication"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type postgresPublicationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPublicationRepo(db *pgxpool.Pool, logger logger.Logger) publication.Repository {
	return &postgresPublicationRepo{db: db, logger: logger}
}

func scanPublication(row pgx.Row) (*publication.Publication, error) {
	p := &publication.Publication{}
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Year, &p.Link, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("publication", "")
		}
		return nil, apperror.NewInternal("failed to scan publication row", err)
	}
	return p, nil
}

func (r *postgresPublicationRepo) Save(ctx context.Context, p *publication.Publication) error {
	query := `
		INSERT INTO publications (id, user_id, title, year, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, p.ID, p.UserID, p.Title, p.Year, p.Link, p.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save publication", err)
	}
	return nil
}

func (r *postgresPublicationRepo) Update(ctx context.Context, p *publication.Publication) error {
	query := `
		UPDATE publications SET title = $3, year = $4, link = $5
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.UserID, p.Title, p.Year, p.Link)
	if err != nil {
		return apperror.NewInternal("failed to update publication", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("publication", p.ID.String())
	}
	return nil
}

func (r *postgresPublicationRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM publications WHERE id = $1 AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete publication", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("publication", id.String())
	}
	return nil
}

func (r *postgresPublicationRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*publication.Publication, error) {
	query := `
		SELECT id, user_id, title, year, link, created_at
		FROM publications
		WHERE id = $1 AND user_id = $2
	`
	return scanPublication(r.db.QueryRow(ctx, query, id, userID))
}

func (r *postgresPublicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*publication.Publication, error) {
	builder := psql.Select("id, user_id, title, year, link, created_at").
		From("publications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("year DESC, created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list publications query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query publications", err)
	}
	defer rows.Close()

	pubs := make([]*publication.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating publication rows", err)
	}
	return pubs, nil
}
