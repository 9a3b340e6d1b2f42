package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	experienceUC "github.com/opencampus/profile-service/internal/application/usecase/experience"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ExperienceHandler struct {
	useCase *experienceUC.ExperienceUseCase
	logger  logger.Logger
}

func NewExperienceHandler(uc *experienceUC.ExperienceUseCase, log logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{useCase: uc, logger: log}
}

func (h *ExperienceHandler) CreateExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req CreateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := experienceUC.CreateExperienceInput{
		UserID:      userID,
		Area:        req.Area,
		Level:       req.Level,
		YearsExp:    req.YearsExp,
		Description: req.Description,
	}

	e, err := h.useCase.CreateExperience(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ExperienceHandler) UpdateExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	experienceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience ID", err))
		return
	}
	var req UpdateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := experienceUC.UpdateExperienceInput{
		ExperienceID: experienceID,
		UserID:       userID,
		Area:         req.Area,
		Level:        req.Level,
		YearsExp:     req.YearsExp,
		Description:  req.Description,
	}

	e, err := h.useCase.UpdateExperience(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExperienceHandler) DeleteExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	experienceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience ID", err))
		return
	}

	if err := h.useCase.DeleteExperience(c.Request.Context(), experienceID, userID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}

	items, err := h.useCase.ListExperiences(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}
