package badge

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ExportAwardsUseCase struct {
	awardRepo badge.AwardRepository
	gateway   identity.Gateway
	logger    logger.Logger
}

func NewExportAwardsUseCase(r badge.AwardRepository, gw identity.Gateway, log logger.Logger) *ExportAwardsUseCase {
	return &ExportAwardsUseCase{awardRepo: r, gateway: gw, logger: log}
}

// ExportRow is one line of the tabular award export.
type ExportRow struct {
	StudentID     string
	StudentName   string
	BadgeName     string
	Category      string
	Rarity        string
	Reason        string
	AwardedByName string
	AwardedAt     string
}

const exportLookupConcurrency = 8

// Execute lists every award and resolves student display names from the
// gateway. Lookups for distinct students are independent and run
// concurrently; a failed lookup leaves the name blank instead of failing
// the export.
func (uc *ExportAwardsUseCase) Execute(ctx context.Context) ([]ExportRow, error) {
	awards, err := uc.awardRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	distinct := make(map[uuid.UUID]struct{}, len(awards))
	for _, a := range awards {
		distinct[a.StudentID] = struct{}{}
	}

	var mu sync.Mutex
	names := make(map[uuid.UUID]string, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportLookupConcurrency)
	for studentID := range distinct {
		g.Go(func() error {
			user, err := uc.gateway.GetUser(gctx, studentID)
			if err != nil {
				uc.logger.Warn("Export name lookup failed",
					zap.String("student_id", studentID.String()), zap.Error(err))
				return nil
			}
			mu.Lock()
			names[studentID] = user.Name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(awards))
	for _, a := range awards {
		row := ExportRow{
			StudentID:     a.StudentID.String(),
			StudentName:   names[a.StudentID],
			Reason:        a.Reason,
			AwardedByName: a.AwardedByName,
			AwardedAt:     a.AwardedAt.Format("2006-01-02 15:04:05"),
		}
		if a.Definition != nil {
			row.BadgeName = a.Definition.Name
			row.Category = a.Definition.Category
			row.Rarity = a.Definition.Rarity
		}
		rows = append(rows, row)
	}
	return rows, nil
}
