package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/repository"
	"community-api/internal/response"
)

// CourseService defines the interface for course listing business logic
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseServiceImpl struct {
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

// NewCourseService creates a new instance of CourseService
func NewCourseService(courseRepo repository.CourseRepository, logger *zap.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	level := req.Level
	if level == "" {
		level = domain.CourseLevelBeginner
	}

	languageIDs, err := marshalIDList(req.LanguageIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode language ids", err.Error())
	}
	instructorIDs, err := marshalIDList(req.InstructorIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode instructor ids", err.Error())
	}

	course := &domain.Course{
		Title:         req.Title,
		Description:   req.Description,
		Video:         req.Video,
		Paid:          req.Paid,
		Amount:        req.Amount,
		Level:         level,
		LanguageIDs:   languageIDs,
		InstructorIDs: instructorIDs,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		s.logger.Error("Failed to create course", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create course", err.Error())
	}

	return toCourseResponse(course)
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find course", err.Error())
	}
	return toCourseResponse(course)
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list courses", err.Error())
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp, err := toCourseResponse(course)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id uuid.UUID, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find course", err.Error())
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Video != nil {
		course.Video = *req.Video
	}
	if req.Paid != nil {
		course.Paid = *req.Paid
	}
	if req.Amount != nil {
		course.Amount = *req.Amount
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Review != nil {
		course.Review = *req.Review
	}
	if req.LanguageIDs != nil {
		languageIDs, err := marshalIDList(req.LanguageIDs)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode language ids", err.Error())
		}
		course.LanguageIDs = languageIDs
	}
	if req.InstructorIDs != nil {
		instructorIDs, err := marshalIDList(req.InstructorIDs)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode instructor ids", err.Error())
		}
		course.InstructorIDs = instructorIDs
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update course", err.Error())
	}

	return toCourseResponse(course)
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.courseRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find course", err.Error())
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete course", err.Error())
	}
	return nil
}

// marshalIDList encodes a uuid slice as a JSON column value, preserving an
// empty array over null
func marshalIDList(ids []uuid.UUID) (datatypes.JSON, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func unmarshalIDList(data datatypes.JSON) ([]uuid.UUID, error) {
	if len(data) == 0 {
		return []uuid.UUID{}, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func toCourseResponse(course *domain.Course) (*dto.CourseResponse, error) {
	languageIDs, err := unmarshalIDList(course.LanguageIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode language ids", err.Error())
	}
	instructorIDs, err := unmarshalIDList(course.InstructorIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode instructor ids", err.Error())
	}

	return &dto.CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Video:         course.Video,
		Paid:          course.Paid,
		Amount:        course.Amount,
		Level:         course.Level,
		LanguageIDs:   languageIDs,
		InstructorIDs: instructorIDs,
		Review:        course.Review,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
	}, nil
}
