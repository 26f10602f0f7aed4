package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/dberrors"
	"github.com/lfarias/sisacad/internal/pkg/logger"
)

// IEnrollmentRepository defines enrollment database operations
type IEnrollmentRepository interface {
	GetAllWithRelations(ctx context.Context) ([]*models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *db.Postgres
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(database *db.Postgres) *EnrollmentRepository {
	return &EnrollmentRepository{db: database}
}

// GetAllWithRelations lists enrollments with the joined student and
// course in one query, newest first.
func (r *EnrollmentRepository) GetAllWithRelations(ctx context.Context) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			SELECT e.id, e.student_id, e.course_id, e.entry_year, e.entry_term, e.created_at,
			       s.id, s.registration_number, s.full_name, s.cpf, s.email,
			       s.birth_date, s.phone, s.status, s.created_at, s.updated_at,
			       c.id, c.name, c.code, c.duration_terms, c.created_at, c.updated_at
			FROM enrollments e
			JOIN students s ON s.id = e.student_id
			JOIN courses c ON c.id = e.course_id
			ORDER BY e.created_at DESC, e.id DESC
		`
		rows, err := q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e models.Enrollment
			var s models.Student
			var c models.Course
			if err := rows.Scan(
				&e.ID, &e.StudentID, &e.CourseID, &e.EntryYear, &e.EntryTerm, &e.CreatedAt,
				&s.ID, &s.RegistrationNumber, &s.FullName, &s.CPF, &s.Email,
				&s.BirthDate, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
				&c.ID, &c.Name, &c.Code, &c.DurationTerms, &c.CreatedAt, &c.UpdatedAt,
			); err != nil {
				return err
			}
			e.Student = &s
			e.Course = &c
			enrollments = append(enrollments, &e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return enrollments, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			SELECT id, student_id, course_id, entry_year, entry_term, created_at
			FROM enrollments
			WHERE id = $1
		`
		return q.QueryRow(ctx, query, id).Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EntryYear,
			&enrollment.EntryTerm,
			&enrollment.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &enrollment, nil
}

// Create enrolls a student in a course
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			INSERT INTO enrollments (student_id, course_id, entry_year, entry_term)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		return q.QueryRow(ctx, query,
			enrollment.StudentID,
			enrollment.CourseID,
			enrollment.EntryYear,
			enrollment.EntryTerm,
		).Scan(&enrollment.ID, &enrollment.CreatedAt)
	})
	if err != nil {
		return mapEnrollmentWriteError(err)
	}
	return nil
}

// Update changes the entry year and term of an enrollment
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			UPDATE enrollments
			SET entry_year = $1, entry_term = $2
			WHERE id = $3
		`
		cmdTag, execErr := q.Exec(ctx, query,
			enrollment.EntryYear, enrollment.EntryTerm, enrollment.ID)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return mapEnrollmentWriteError(err)
	}
	if affected == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		if dberrors.IsPolicyDenial(err) {
			return apperrors.ErrPermissionDenied
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error deleting enrollment")
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

func mapEnrollmentWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_course_id_key"):
		return apperrors.ErrAlreadyEnrolled
	case dberrors.IsForeignKeyViolation(err, "enrollments_student_id_fkey"):
		return apperrors.ErrStudentNotFound
	case dberrors.IsForeignKeyViolation(err, "enrollments_course_id_fkey"):
		return apperrors.ErrCourseNotFound
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("entryTerm", "entry term must be 1 or 2")
	case dberrors.IsPolicyDenial(err):
		return apperrors.ErrPermissionDenied
	}
	logger.Error().Err(err).Msg("Error writing enrollment")
	return fmt.Errorf("error writing enrollment: %w", err)
}
