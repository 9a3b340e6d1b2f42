package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectUC "github.com/opencampus/profile-service/internal/application/usecase/project"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProjectHandler struct {
	useCase *projectUC.ProjectUseCase
	logger  logger.Logger
}

func NewProjectHandler(uc *projectUC.ProjectUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{useCase: uc, logger: log}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.CreateProjectInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Github:      req.Github,
		DemoLink:    req.DemoLink,
		Image:       req.Image,
	}

	p, err := h.useCase.CreateProject(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.UpdateProjectInput{
		ProjectID:   projectID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Github:      req.Github,
		DemoLink:    req.DemoLink,
		Image:       req.Image,
	}

	p, err := h.useCase.UpdateProject(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	if err := h.useCase.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}

	projects, err := h.useCase.ListProjects(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) UploadImage(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.NewInvalidInput("image file is required", err))
		return
	}
	if fileHeader.Size > maxImageSize {
		c.Error(apperror.NewInvalidInput("image exceeds the 5 MiB limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read uploaded file", err))
		return
	}
	defer file.Close()

	url, err := h.useCase.UploadImage(c.Request.Context(), projectID, userID, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": url})
}
