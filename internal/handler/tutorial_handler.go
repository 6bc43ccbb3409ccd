package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// TutorialHandler serves tutorial endpoints
type TutorialHandler struct {
	tutorialService service.TutorialService
	logger          *zap.Logger
}

// NewTutorialHandler creates a new tutorial handler
func NewTutorialHandler(tutorialService service.TutorialService, logger *zap.Logger) *TutorialHandler {
	return &TutorialHandler{tutorialService: tutorialService, logger: logger}
}

func (h *TutorialHandler) Create(c *gin.Context) {
	var req dto.CreateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	tutorial, err := h.tutorialService.CreateTutorial(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, tutorial)
}

func (h *TutorialHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	tutorial, err := h.tutorialService.GetTutorial(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tutorial)
}

// GetBySlug resolves a tutorial by its unique slug
func (h *TutorialHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Slug is required")
		return
	}

	tutorial, err := h.tutorialService.GetTutorialBySlug(c.Request.Context(), slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tutorial)
}

func (h *TutorialHandler) List(c *gin.Context) {
	tutorials, err := h.tutorialService.ListTutorials(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tutorials)
}

func (h *TutorialHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	tutorial, err := h.tutorialService.UpdateTutorial(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tutorial)
}

func (h *TutorialHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tutorialService.DeleteTutorial(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Tutorial deleted"})
}

// IncrementView bumps the tutorial's view counter
func (h *TutorialHandler) IncrementView(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.tutorialService.IncrementViewCount(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "View recorded"})
}
