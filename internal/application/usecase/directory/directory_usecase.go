package directory

import (
	"context"

	"github.com/opencampus/profile-service/internal/domain/identity"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

// DirectoryUseCase serves the college and user listings proxied from the
// Identity Gateway. These listings are load-bearing, so gateway failures
// surface instead of degrading.
type DirectoryUseCase struct {
	gateway identity.Gateway
	logger  logger.Logger
}

func NewDirectoryUseCase(gw identity.Gateway, log logger.Logger) *DirectoryUseCase {
	return &DirectoryUseCase{gateway: gw, logger: log}
}

func (uc *DirectoryUseCase) ListColleges(ctx context.Context) ([]identity.College, error) {
	colleges, err := uc.gateway.ListColleges(ctx)
	if err != nil {
		return nil, apperror.NewUnavailable("Identity Gateway", err)
	}
	return colleges, nil
}

func (uc *DirectoryUseCase) ListUsers(ctx context.Context) ([]identity.User, error) {
	users, err := uc.gateway.ListUsers(ctx)
	if err != nil {
		return nil, apperror.NewUnavailable("Identity Gateway", err)
	}
	return users, nil
}
