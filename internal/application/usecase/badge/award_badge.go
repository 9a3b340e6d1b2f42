package badge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opencampus/profile-service/internal/application/service"
	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/internal/domain/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type AwardBadgeUseCase struct {
	awardRepo      badge.AwardRepository
	definitionRepo badge.DefinitionRepository
	profileRepo    profile.Repository
	gateway        identity.Gateway
	publisher      service.AwardEventPublisher
	logger         logger.Logger
}

func NewAwardBadgeUseCase(
	awardRepo badge.AwardRepository,
	definitionRepo badge.DefinitionRepository,
	profileRepo profile.Repository,
	gw identity.Gateway,
	publisher service.AwardEventPublisher,
	log logger.Logger,
) *AwardBadgeUseCase {
	return &AwardBadgeUseCase{
		awardRepo:      awardRepo,
		definitionRepo: definitionRepo,
		profileRepo:    profileRepo,
		gateway:        gw,
		publisher:      publisher,
		logger:         log,
	}
}

type AwardBadgeInput struct {
	StudentID     uuid.UUID
	BadgeID       uuid.UUID
	AwardedBy     uuid.UUID
	AwardedByName string
	Reason        string
	ProjectID     *uuid.UUID
	EventID       *uuid.UUID
}

// Execute records the award. The target must exist upstream; a gateway
// error that is not "no such user" surfaces as unavailable, never as a
// silent pass.
func (uc *AwardBadgeUseCase) Execute(ctx context.Context, in AwardBadgeInput) (*badge.Award, error) {
	student, err := uc.gateway.GetUser(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", in.StudentID.String())
		}
		return nil, apperror.NewUnavailable("Identity Gateway", err)
	}

	def, err := uc.definitionRepo.FindByID(ctx, in.BadgeID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.profileRepo.EnsureExists(ctx, in.StudentID); err != nil {
		return nil, err
	}

	award := &badge.Award{
		ID:            uuid.New(),
		StudentID:     in.StudentID,
		BadgeID:       in.BadgeID,
		AwardedBy:     in.AwardedBy,
		AwardedByName: in.AwardedByName,
		Reason:        in.Reason,
		ProjectID:     in.ProjectID,
		EventID:       in.EventID,
		AwardedAt:     time.Now().UTC(),
	}
	if err := uc.awardRepo.Save(ctx, award); err != nil {
		return nil, err
	}
	award.Definition = def

	uc.announce(ctx, award, student)

	return award, nil
}

// announce is fire-and-forget; a publish failure never rolls back the
// award or changes the response.
func (uc *AwardBadgeUseCase) announce(ctx context.Context, a *badge.Award, student *identity.User) {
	d := a.Definition
	studentName := student.Name
	if studentName == "" {
		studentName = a.StudentID.String()
	}

	payload := service.BadgeAwardedPayload{
		EventType:     "badge_awarded",
		StudentID:     a.StudentID,
		BadgeID:       a.BadgeID,
		BadgeName:     d.Name,
		Rarity:        strings.ToLower(d.Rarity),
		Category:      d.Category,
		Message:       fmt.Sprintf("%s earned the %s badge: %s", studentName, strings.ToLower(d.Rarity), d.Name),
		AwardedBy:     a.AwardedBy,
		AwardedByName: a.AwardedByName,
		ProjectID:     a.ProjectID,
		EventID:       a.EventID,
		AwardedAt:     a.AwardedAt,
	}

	if err := uc.publisher.PublishBadgeAwarded(ctx, payload); err != nil {
		uc.logger.Warn("Failed to publish badge award event",
			zap.String("student_id", a.StudentID.String()),
			zap.String("badge_id", a.BadgeID.String()),
			zap.Error(err))
	}
}
