package services

import (
	"context"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// EnrollmentService handles student-course enrollments
type EnrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

func validateEntry(entryYear, entryTerm int) error {
	if !validation.IsValidEntryYear(entryYear) {
		return apperrors.NewValidationError("entryYear", "entry year must be between 1900 and 2100")
	}
	if !validation.IsValidEntryTerm(entryTerm) {
		return apperrors.NewValidationError("entryTerm", "entry term must be 1 or 2")
	}
	return nil
}

// GetEnrollments lists all enrollments with their student and course
func (s *EnrollmentService) GetEnrollments(ctx context.Context) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.GetAllWithRelations(ctx)
}

// CreateEnrollment enrolls a student in a course. Duplicate pairs and
// dangling references are rejected by the database constraints.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := validateEntry(req.EntryYear, req.EntryTerm); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		EntryYear: req.EntryYear,
		EntryTerm: req.EntryTerm,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentID", enrollment.ID).
		Int64("studentID", enrollment.StudentID).
		Int64("courseID", enrollment.CourseID).
		Msg("Enrollment created")
	return enrollment, nil
}

// UpdateEnrollment changes the entry year and term
func (s *EnrollmentService) UpdateEnrollment(ctx context.Context, id int64, req dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := validateEntry(req.EntryYear, req.EntryTerm); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		ID:        id,
		EntryYear: req.EntryYear,
		EntryTerm: req.EntryTerm,
	}
	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetByID(ctx, id)
}

// DeleteEnrollment removes an enrollment
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("enrollmentID", id).Msg("Enrollment deleted")
	return nil
}
