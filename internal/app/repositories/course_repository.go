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

// ICourseRepository defines course database operations
type ICourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.Postgres
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.Postgres) *CourseRepository {
	return &CourseRepository{db: database}
}

const courseColumns = `id, name, code, duration_terms, created_at, updated_at`

func scanCourse(row pgx.Row, c *models.Course) error {
	return row.Scan(&c.ID, &c.Name, &c.Code, &c.DurationTerms, &c.CreatedAt, &c.UpdatedAt)
}

// GetAll lists courses ordered by name
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		rows, err := q.Query(ctx,
			fmt.Sprintf(`SELECT %s FROM courses ORDER BY name`, courseColumns))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var course models.Course
			if err := scanCourse(rows, &course); err != nil {
				return err
			}
			courses = append(courses, &course)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		return scanCourse(q.QueryRow(ctx,
			fmt.Sprintf(`SELECT %s FROM courses WHERE id = $1`, courseColumns), id), &course)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			INSERT INTO courses (name, code, duration_terms)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		return q.QueryRow(ctx, query, course.Name, course.Code, course.DurationTerms).
			Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	})
	if err != nil {
		return mapCourseWriteError(err)
	}
	return nil
}

// Update replaces the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			UPDATE courses
			SET name = $1, code = $2, duration_terms = $3
			WHERE id = $4
		`
		cmdTag, execErr := q.Exec(ctx, query,
			course.Name, course.Code, course.DurationTerms, course.ID)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return mapCourseWriteError(err)
	}
	if affected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. The restrict constraint on enrollments rejects
// the delete while any student is still enrolled.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "enrollments_course_id_fkey") {
			return apperrors.ErrCourseHasEnrollments
		}
		if dberrors.IsPolicyDenial(err) {
			return apperrors.ErrPermissionDenied
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func mapCourseWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "courses_name_key"),
		dberrors.IsDuplicateConstraintError(err, "courses_code_key"):
		return apperrors.ErrCourseAlreadyExists
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("durationTerms", "duration must be at least one term")
	case dberrors.IsPolicyDenial(err):
		return apperrors.ErrPermissionDenied
	}
	logger.Error().Err(err).Msg("Error writing course")
	return fmt.Errorf("error writing course: %w", err)
}
