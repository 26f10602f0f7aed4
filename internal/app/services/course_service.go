package services

import (
	"context"
	"strings"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CourseService handles course catalog management
type CourseService struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func validateCourse(name, code string, durationTerms int) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("name", "course name cannot be empty")
	}
	if strings.TrimSpace(code) == "" {
		return apperrors.NewValidationError("code", "course code cannot be empty")
	}
	if durationTerms < 1 {
		return apperrors.NewValidationError("durationTerms", "duration must be at least one term")
	}
	return nil
}

// GetAllCourses lists all courses ordered by name
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID retrieves a single course
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse adds a course to the catalog
func (s *CourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := validateCourse(req.Name, req.Code, req.DurationTerms); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DurationTerms: req.DurationTerms,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// UpdateCourse replaces the mutable fields of a course
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := validateCourse(req.Name, req.Code, req.DurationTerms); err != nil {
		return nil, err
	}

	course := &models.Course{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		DurationTerms: req.DurationTerms,
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course. Courses with enrollments are refused by
// the database and reported as a conflict, never silently cascaded.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
