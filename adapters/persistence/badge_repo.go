package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type postgresBadgeDefinitionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresBadgeDefinitionRepo(db *pgxpool.Pool, logger logger.Logger) badge.DefinitionRepository {
	return &postgresBadgeDefinitionRepo{db: db, logger: logger}
}

const definitionColumns = `id, name, description, icon, color, category, criteria, rarity, created_by, is_active, created_at`

func scanDefinition(row pgx.Row) (*badge.Definition, error) {
	d := &badge.Definition{}
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.Icon, &d.Color,
		&d.Category, &d.Criteria, &d.Rarity, &d.CreatedBy, &d.IsActive, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("badge definition", "")
		}
		return nil, apperror.NewInternal("failed to scan badge definition row", err)
	}
	return d, nil
}

func (r *postgresBadgeDefinitionRepo) Save(ctx context.Context, d *badge.Definition) error {
	query := `
		INSERT INTO badge_definitions (` + definitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.Name, d.Description, d.Icon, d.Color,
		d.Category, d.Criteria, d.Rarity, d.CreatedBy, d.IsActive, d.CreatedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("badge definition", "name", d.Name)
		}
		return apperror.NewInternal("failed to save badge definition", err)
	}
	return nil
}

func (r *postgresBadgeDefinitionRepo) FindByID(ctx context.Context, id uuid.UUID) (*badge.Definition, error) {
	query := `SELECT ` + definitionColumns + ` FROM badge_definitions WHERE id = $1`
	return scanDefinition(r.db.QueryRow(ctx, query, id))
}

func (r *postgresBadgeDefinitionRepo) ListActive(ctx context.Context) ([]*badge.Definition, error) {
	builder := psql.Select(definitionColumns).
		From("badge_definitions").
		Where(sq.Eq{"is_active": true}).
		OrderBy("category ASC, name ASC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list definitions query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query badge definitions", err)
	}
	defer rows.Close()

	defs := make([]*badge.Definition, 0)
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating badge definition rows", err)
	}
	return defs, nil
}

type postgresAwardRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAwardRepo(db *pgxpool.Pool, logger logger.Logger) badge.AwardRepository {
	return &postgresAwardRepo{db: db, logger: logger}
}

const awardJoinColumns = `
	a.id, a.student_id, a.badge_id, a.awarded_by, a.awarded_by_name, a.reason,
	a.project_id, a.event_id, a.awarded_at,
	d.id, d.name, d.description, d.icon, d.color, d.category, d.criteria,
	d.rarity, d.created_by, d.is_active, d.created_at`

func scanAwardWithDefinition(row pgx.Row) (*badge.Award, error) {
	a := &badge.Award{Definition: &badge.Definition{}}
	d := a.Definition
	err := row.Scan(
		&a.ID, &a.StudentID, &a.BadgeID, &a.AwardedBy, &a.AwardedByName, &a.Reason,
		&a.ProjectID, &a.EventID, &a.AwardedAt,
		&d.ID, &d.Name, &d.Description, &d.Icon, &d.Color, &d.Category, &d.Criteria,
		&d.Rarity, &d.CreatedBy, &d.IsActive, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("badge award", "")
		}
		return nil, apperror.NewInternal("failed to scan badge award row", err)
	}
	return a, nil
}

func (r *postgresAwardRepo) Save(ctx context.Context, a *badge.Award) error {
	query := `
		INSERT INTO student_badges (id, student_id, badge_id, awarded_by, awarded_by_name, reason, project_id, event_id, awarded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.StudentID, a.BadgeID, a.AwardedBy, a.AwardedByName, a.Reason,
		a.ProjectID, a.EventID, a.AwardedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return apperror.NewNotFound("badge definition", a.BadgeID.String())
		}
		return apperror.NewInternal("failed to save badge award", err)
	}
	return nil
}

func (r *postgresAwardRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*badge.Award, error) {
	query := `
		SELECT ` + awardJoinColumns + `
		FROM student_badges a
		JOIN badge_definitions d ON d.id = a.badge_id
		WHERE a.student_id = $1
		ORDER BY a.awarded_at DESC
	`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query student badges", err)
	}
	return collectAwards(rows)
}

func (r *postgresAwardRepo) ListAll(ctx context.Context) ([]*badge.Award, error) {
	query := `
		SELECT ` + awardJoinColumns + `
		FROM student_badges a
		JOIN badge_definitions d ON d.id = a.badge_id
		ORDER BY a.awarded_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to query badge awards", err)
	}
	return collectAwards(rows)
}

func collectAwards(rows pgx.Rows) ([]*badge.Award, error) {
	defer rows.Close()
	awards := make([]*badge.Award, 0)
	for rows.Next() {
		a, err := scanAwardWithDefinition(rows)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating badge award rows", err)
	}
	return awards, nil
}
