package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// CourseHandler serves course listing endpoints
type CourseHandler struct {
	courseService service.CourseService
	logger        *zap.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, course)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, courses)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	course, err := h.courseService.UpdateCourse(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Course deleted"})
}
