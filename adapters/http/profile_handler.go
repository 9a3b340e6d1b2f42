package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	profileUC "github.com/opencampus/profile-service/internal/application/usecase/profile"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	enrichUseCase  *profileUC.EnrichProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, enrichUC *profileUC.EnrichProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc, enrichUseCase: enrichUC, logger: log}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}

	h.serveEnriched(c, userID)
}

func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid user ID", err))
		return
	}

	h.serveEnriched(c, userID)
}

func (h *ProfileHandler) serveEnriched(c *gin.Context, userID uuid.UUID) {
	out, err := h.enrichUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	// The lazy name write-back is a separate step so a storage hiccup can
	// never break the read.
	if out.Backfill != nil {
		if err := h.enrichUseCase.ApplyBackfill(c.Request.Context(), out.Backfill); err != nil {
			h.logger.Warn("Profile name backfill failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, out.View)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := profileUC.UpdateProfileInput{
		UserID:     userID,
		Name:       req.Name,
		Bio:        req.Bio,
		Skills:     req.Skills,
		Expertise:  req.Expertise,
		Github:     req.Github,
		Linkedin:   req.Linkedin,
		Twitter:    req.Twitter,
		Website:    req.Website,
		ResumeURL:  req.ResumeURL,
		Phone:      req.Phone,
		Location:   req.Location,
		Department: req.Department,
		Year:       req.Year,
	}

	p, err := h.profileUseCase.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) ListSkills(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	skills, err := h.profileUseCase.ListSkills(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *ProfileHandler) AddSkill(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	skills, err := h.profileUseCase.AddSkill(c.Request.Context(), userID, req.Skill)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"skills": skills})
}

func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}

	skills, err := h.profileUseCase.RemoveSkill(c.Request.Context(), userID, c.Param("skill"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}
