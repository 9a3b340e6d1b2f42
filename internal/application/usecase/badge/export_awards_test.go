package badge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/logger"
)

func TestExportAwards_ResolvesNames(t *testing.T) {
	studentID := uuid.New()
	def := testDefinition()
	awardRepo := &fakeAwardRepo{saved: []*badge.Award{
		{
			ID:         uuid.New(),
			StudentID:  studentID,
			BadgeID:    def.ID,
			Reason:     "spring hackathon",
			AwardedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Definition: def,
		},
	}}

	uc := NewExportAwardsUseCase(
		awardRepo,
		&fakeGateway{user: &identity.User{ID: studentID, Name: "Quinn Vo"}},
		logger.NewNop(),
	)

	rows, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, studentID.String(), rows[0].StudentID)
		assert.Equal(t, "Quinn Vo", rows[0].StudentName)
		assert.Equal(t, "Hackathon Winner", rows[0].BadgeName)
		assert.Equal(t, "COMPETITION", rows[0].Category)
		assert.Equal(t, "2026-03-14 09:30:00", rows[0].AwardedAt)
	}
}

func TestExportAwards_LookupFailureLeavesNameBlank(t *testing.T) {
	def := testDefinition()
	awardRepo := &fakeAwardRepo{saved: []*badge.Award{
		{ID: uuid.New(), StudentID: uuid.New(), BadgeID: def.ID, Definition: def},
	}}

	uc := NewExportAwardsUseCase(
		awardRepo,
		&fakeGateway{err: errors.New("timeout")},
		logger.NewNop(),
	)

	rows, err := uc.Execute(context.Background())

	assert.NoError(t, err, "a failed name lookup must not fail the export")
	if assert.Len(t, rows, 1) {
		assert.Empty(t, rows[0].StudentName)
	}
}
