package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// CommunityHandler serves community listing endpoints
type CommunityHandler struct {
	communityService service.CommunityService
	logger           *zap.Logger
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(communityService service.CommunityService, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{communityService: communityService, logger: logger}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req dto.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	community, err := h.communityService.CreateCommunity(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, community)
}

func (h *CommunityHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	community, err := h.communityService.GetCommunity(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	communities, err := h.communityService.ListCommunities(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, communities)
}

func (h *CommunityHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	community, err := h.communityService.UpdateCommunity(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, community)
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.communityService.DeleteCommunity(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Community deleted"})
}
