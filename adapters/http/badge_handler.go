package http

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	badgeUC "github.com/opencampus/profile-service/internal/application/usecase/badge"
	eligibilityUC "github.com/opencampus/profile-service/internal/application/usecase/eligibility"
	"github.com/opencampus/profile-service/internal/domain/badge"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type BadgeHandler struct {
	definitionUseCase  *badgeUC.DefinitionUseCase
	awardUseCase       *badgeUC.AwardBadgeUseCase
	exportUseCase      *badgeUC.ExportAwardsUseCase
	policyUseCase      *badgeUC.PolicyUseCase
	eligibilityUseCase *eligibilityUC.EligibilityUseCase
	logger             logger.Logger
}

func NewBadgeHandler(
	definitionUC *badgeUC.DefinitionUseCase,
	awardUC *badgeUC.AwardBadgeUseCase,
	exportUC *badgeUC.ExportAwardsUseCase,
	policyUC *badgeUC.PolicyUseCase,
	eligUC *eligibilityUC.EligibilityUseCase,
	log logger.Logger,
) *BadgeHandler {
	return &BadgeHandler{
		definitionUseCase:  definitionUC,
		awardUseCase:       awardUC,
		exportUseCase:      exportUC,
		policyUseCase:      policyUC,
		eligibilityUseCase: eligUC,
		logger:             log,
	}
}

func (h *BadgeHandler) ListDefinitions(c *gin.Context) {
	defs, err := h.definitionUseCase.ListDefinitions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

func (h *BadgeHandler) CreateDefinition(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req CreateBadgeDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := badgeUC.CreateDefinitionInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Category:    req.Category,
		Criteria:    req.Criteria,
		Rarity:      req.Rarity,
		CreatedBy:   principal.UserID,
	}

	d, err := h.definitionUseCase.CreateDefinition(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *BadgeHandler) AwardBadge(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req AwardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := badgeUC.AwardBadgeInput{
		StudentID:     req.StudentID,
		BadgeID:       req.BadgeID,
		AwardedBy:     principal.UserID,
		AwardedByName: principal.DisplayName,
		Reason:        req.Reason,
		ProjectID:     req.ProjectID,
		EventID:       req.EventID,
	}

	award, err := h.awardUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, award)
}

func (h *BadgeHandler) ExportAwards(c *gin.Context) {
	rows, err := h.exportUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="badge_awards.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"student_id", "student_name", "badge", "category", "rarity", "reason", "awarded_by", "awarded_at"})
	for _, row := range rows {
		w.Write([]string{
			row.StudentID, row.StudentName, row.BadgeName, row.Category,
			row.Rarity, row.Reason, row.AwardedByName, row.AwardedAt,
		})
	}
	w.Flush()
}

func (h *BadgeHandler) CheckEligibility(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid user ID", err))
		return
	}

	e, err := h.eligibilityUseCase.Check(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToEligibilityDTO(e))
}

func (h *BadgeHandler) SetPolicy(c *gin.Context) {
	var req SetPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	required := badge.DefaultEventCreationRequired
	if req.EventCreationRequired != nil {
		required = *req.EventCreationRequired
	}
	diversity := badge.DefaultCategoryDiversityMin
	if req.CategoryDiversityMin != nil {
		diversity = *req.CategoryDiversityMin
	}

	input := badgeUC.SetPolicyInput{
		CollegeID:             req.CollegeID,
		DepartmentID:          req.DepartmentID,
		EventCreationRequired: required,
		CategoryDiversityMin:  diversity,
		IsActive:              req.IsActive,
	}

	p, err := h.policyUseCase.SetPolicy(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *BadgeHandler) GetPolicy(c *gin.Context) {
	collegeID, err := uuid.Parse(c.Param("collegeId"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid college ID", err))
		return
	}

	p, err := h.policyUseCase.GetPolicy(c.Request.Context(), collegeID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}
