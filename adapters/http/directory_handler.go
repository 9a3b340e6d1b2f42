package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	directoryUC "github.com/opencampus/profile-service/internal/application/usecase/directory"
	"github.com/opencampus/profile-service/pkg/logger"
)

type DirectoryHandler struct {
	useCase *directoryUC.DirectoryUseCase
	logger  logger.Logger
}

func NewDirectoryHandler(uc *directoryUC.DirectoryUseCase, log logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{useCase: uc, logger: log}
}

func (h *DirectoryHandler) ListColleges(c *gin.Context) {
	colleges, err := h.useCase.ListColleges(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, colleges)
}

func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}
