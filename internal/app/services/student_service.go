package services

import (
	"context"
	"strings"
	"time"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/helpers"
	"github.com/lfarias/sisacad/internal/pkg/validation"
	"github.com/rs/zerolog"
)

const birthDateLayout = "2006-01-02"

// StudentService handles student records. Input shapes are validated
// here field by field before any statement reaches the database; the
// unique constraints remain the final authority on duplicates.
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func validateStudentShape(registrationNumber, fullName, cpf, email, birthDate string, phone *string) (time.Time, error) {
	if !validation.IsValidRegistrationNumber(registrationNumber) {
		return time.Time{}, apperrors.NewValidationError("registrationNumber",
			"registration number must match YYYY-T-NNNN, e.g. 2025-1-0042")
	}
	name := strings.TrimSpace(fullName)
	if len(name) < validation.NameMinLength || len(name) > validation.NameMaxLength {
		return time.Time{}, apperrors.NewValidationError("fullName", "full name must be between 2 and 150 characters")
	}
	if !validation.IsValidCPF(cpf) {
		return time.Time{}, apperrors.NewValidationError("cpf",
			"CPF must match 000.000.000-00")
	}
	if !validation.IsValidEmail(strings.ToLower(strings.TrimSpace(email))) {
		return time.Time{}, apperrors.NewValidationError("email", "invalid email format")
	}
	born, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("birthDate", "birth date must be in YYYY-MM-DD format")
	}
	if born.After(time.Now()) {
		return time.Time{}, apperrors.NewValidationError("birthDate", "birth date cannot be in the future")
	}
	if phone != nil && *phone != "" && !validation.IsValidPhone(*phone) {
		return time.Time{}, apperrors.NewValidationError("phone", "invalid phone number")
	}
	return born, nil
}

// GetStudents lists students matching the query, paginated
func (s *StudentService) GetStudents(ctx context.Context, query dto.StudentListQuery, page, pageSize int) ([]*models.Student, *dto.PaginationInfo, error) {
	if query.Status != "" && !models.StudentStatus(query.Status).IsValid() {
		return nil, nil, apperrors.NewValidationError("status", "unknown student status")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	filter := repositories.StudentFilter{
		Status: query.Status,
		Search: strings.TrimSpace(query.Search),
	}

	students, total, err := s.studentRepo.GetAll(ctx, filter, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, pageSize)
	return students, &pagination, nil
}

// GetStudentByID retrieves a single student
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// CreateStudent registers a new student as ACTIVE
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	born, err := validateStudentShape(req.RegistrationNumber, req.FullName, req.CPF, req.Email, req.BirthDate, req.Phone)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		RegistrationNumber: req.RegistrationNumber,
		FullName:           strings.TrimSpace(req.FullName),
		CPF:                req.CPF,
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		BirthDate:          born,
		Phone:              req.Phone,
		Status:             models.StudentStatusActive,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", student.ID).
		Str("registrationNumber", student.RegistrationNumber).
		Msg("Student created")
	return student, nil
}

// UpdateStudent replaces a student record
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	born, err := validateStudentShape(req.RegistrationNumber, req.FullName, req.CPF, req.Email, req.BirthDate, req.Phone)
	if err != nil {
		return nil, err
	}
	status := models.StudentStatus(req.Status)
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStudentStatus
	}

	student := &models.Student{
		ID:                 id,
		RegistrationNumber: req.RegistrationNumber,
		FullName:           strings.TrimSpace(req.FullName),
		CPF:                req.CPF,
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		BirthDate:          born,
		Phone:              req.Phone,
		Status:             status,
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, id)
}

// UpdateStudentStatus flips only the lifecycle status
func (s *StudentService) UpdateStudentStatus(ctx context.Context, id int64, req dto.UpdateStudentStatusRequest) error {
	status := models.StudentStatus(req.Status)
	if !status.IsValid() {
		return apperrors.ErrInvalidStudentStatus
	}
	return s.studentRepo.UpdateStatus(ctx, id, status)
}

// DeactivateStudent is the default removal path: the record and its
// enrollment history stay, only the status changes to INACTIVE.
func (s *StudentService) DeactivateStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.UpdateStatus(ctx, id, models.StudentStatusInactive); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deactivated")
	return nil
}

// DeleteStudent permanently removes a student and cascades to their
// enrollments.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
