package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/project"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type BadgeRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool         *pgxpool.Pool
	pgContainer    *postgres.PostgresContainer
	testLogger     logger.Logger
	definitionRepo badge.DefinitionRepository
	awardRepo      badge.AwardRepository
	projectRepo    project.Repository
	awarder        uuid.UUID
}

func (s *BadgeRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewNop()
	s.definitionRepo = NewPostgresBadgeDefinitionRepo(s.dbPool, s.testLogger)
	s.awardRepo = NewPostgresAwardRepo(s.dbPool, s.testLogger)
	s.projectRepo = NewPostgresProjectRepo(s.dbPool, s.testLogger)
	s.awarder = uuid.New()
}

func (s *BadgeRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestBadgeRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(BadgeRepoIntegrationTestSuite))
}

func (s *BadgeRepoIntegrationTestSuite) newDefinition(name, category string) *badge.Definition {
	return &badge.Definition{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		Rarity:    badge.RarityRare,
		CreatedBy: s.awarder,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *BadgeRepoIntegrationTestSuite) Test_SaveDefinition_And_Award() {
	ctx := context.Background()

	def := s.newDefinition("Open Source Contributor", "TECHNICAL")
	s.NoError(s.definitionRepo.Save(ctx, def))

	studentID := uuid.New()
	award := &badge.Award{
		ID:        uuid.New(),
		StudentID: studentID,
		BadgeID:   def.ID,
		AwardedBy: s.awarder,
		Reason:    "merged upstream fix",
		AwardedAt: time.Now().UTC(),
	}
	s.NoError(s.awardRepo.Save(ctx, award))

	awards, err := s.awardRepo.ListByStudent(ctx, studentID)

	s.NoError(err)
	s.Len(awards, 1)
	s.NotNil(awards[0].Definition)
	s.Equal("Open Source Contributor", awards[0].Definition.Name)
	s.Equal("TECHNICAL", awards[0].Definition.Category)
}

func (s *BadgeRepoIntegrationTestSuite) Test_DuplicateDefinitionName_Conflicts() {
	ctx := context.Background()

	def := s.newDefinition("Dean's List", "ACADEMIC")
	s.NoError(s.definitionRepo.Save(ctx, def))

	dup := s.newDefinition("Dean's List", "ACADEMIC")
	err := s.definitionRepo.Save(ctx, dup)

	s.Error(err)
	s.True(errors.Is(err, apperror.ErrConflict))
}

func (s *BadgeRepoIntegrationTestSuite) Test_AwardUnknownDefinition_NotFound() {
	ctx := context.Background()

	award := &badge.Award{
		ID:        uuid.New(),
		StudentID: uuid.New(),
		BadgeID:   uuid.New(),
		AwardedBy: s.awarder,
		AwardedAt: time.Now().UTC(),
	}
	err := s.awardRepo.Save(ctx, award)

	s.Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound))
}

func (s *BadgeRepoIntegrationTestSuite) Test_ProjectOwnership_UpdateByStranger() {
	ctx := context.Background()

	owner := uuid.New()
	p := &project.PersonalProject{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     "Campus Map",
		CreatedAt: time.Now().UTC(),
	}
	s.NoError(s.projectRepo.Save(ctx, p))

	stranger := *p
	stranger.UserID = uuid.New()
	stranger.Title = "Hijacked"

	err := s.projectRepo.Update(ctx, &stranger)

	s.Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound), "ownership mismatch must read as not found")

	kept, err := s.projectRepo.FindByID(ctx, p.ID, owner)
	s.NoError(err)
	s.Equal("Campus Map", kept.Title)
}
