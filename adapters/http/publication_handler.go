package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	publicationUC "github.com/opencampus/profile-service/internal/application/usecase/publication"
	"github.com/opencampus/profile-service/pkg/apperror"
	"github.com/opencampus/profile-service/pkg/logger"
)

type PublicationHandler struct {
	useCase *publicationUC.PublicationUseCase
	logger  logger.Logger
}

func NewPublicationHandler(uc *publicationUC.PublicationUseCase, log logger.Logger) *PublicationHandler {
	return &PublicationHandler{useCase: uc, logger: log}
}

func (h *PublicationHandler) CreatePublication(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	var req CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := publicationUC.CreatePublicationInput{
		UserID: userID,
		Title:  req.Title,
		Year:   req.Year,
		Link:   req.Link,
	}

	p, err := h.useCase.CreatePublication(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PublicationHandler) UpdatePublication(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	publicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid publication ID", err))
		return
	}
	var req UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := publicationUC.UpdatePublicationInput{
		PublicationID: publicationID,
		UserID:        userID,
		Title:         req.Title,
		Year:          req.Year,
		Link:          req.Link,
	}

	p, err := h.useCase.UpdatePublication(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PublicationHandler) DeletePublication(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}
	publicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid publication ID", err))
		return
	}

	if err := h.useCase.DeletePublication(c.Request.Context(), publicationID, userID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PublicationHandler) ListPublications(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("principal not found in context"))
		return
	}

	pubs, err := h.useCase.ListPublications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, pubs)
}
