package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `id, user_id, name, bio, skills, expertise, github, linkedin, twitter, website, resume_url, phone, location, department, year, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Bio,
		&p.Skills,
		&p.Expertise,
		&p.Github,
		&p.Linkedin,
		&p.Twitter,
		&p.Website,
		&p.ResumeURL,
		&p.Phone,
		&p.Location,
		&p.Department,
		&p.Year,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Expertise == nil {
		p.Expertise = []string{}
	}
	return p, nil
}

// GetByUserID returns an empty, unpersisted profile when no row exists.
// Profiles are created lazily on first write.
func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.New(userID), nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, name, bio, skills, expertise, github, linkedin, twitter, website, resume_url, phone, location, department, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			expertise = EXCLUDED.expertise,
			github = EXCLUDED.github,
			linkedin = EXCLUDED.linkedin,
			twitter = EXCLUDED.twitter,
			website = EXCLUDED.website,
			resume_url = EXCLUDED.resume_url,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			department = EXCLUDED.department,
			year = EXCLUDED.year,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Bio, p.Skills, p.Expertise,
		p.Github, p.Linkedin, p.Twitter, p.Website,
		p.ResumeURL, p.Phone, p.Location, p.Department, p.Year,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) EnsureExists(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	empty := profile.New(userID)
	query := `
		INSERT INTO profiles (id, user_id, skills, expertise, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, empty.ID, empty.UserID, empty.Skills, empty.Expertise, empty.CreatedAt, empty.UpdatedAt)
	if err != nil {
		return nil, apperror.NewInternal("failed to ensure profile exists", err)
	}
	return r.GetByUserID(ctx, userID)
}

// SetName only touches the name column so concurrent backfills stay
// last-writer-wins on a single field.
func (r *postgresProfileRepo) SetName(ctx context.Context, userID uuid.UUID, name string) error {
	query := `
		INSERT INTO profiles (id, user_id, name, skills, expertise, created_at, updated_at)
		VALUES ($1, $2, $3, '{}', '{}', NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), userID, name)
	if err != nil {
		return apperror.NewInternal("failed to set profile name", err)
	}
	return nil
}
