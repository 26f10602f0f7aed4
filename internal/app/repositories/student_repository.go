package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/dberrors"
	"github.com/lfarias/sisacad/internal/pkg/logger"
)

// StudentFilter narrows the student listing
type StudentFilter struct {
	Status string
	Search string
}

// IStudentRepository defines student database operations
type IStudentRepository interface {
	GetAll(ctx context.Context, filter StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.Postgres
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.Postgres) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{
	"id", "registration_number", "full_name", "cpf", "email",
	"birth_date", "phone", "status", "created_at", "updated_at",
}

func scanStudent(row pgx.Row, s *models.Student) error {
	return row.Scan(
		&s.ID,
		&s.RegistrationNumber,
		&s.FullName,
		&s.CPF,
		&s.Email,
		&s.BirthDate,
		&s.Phone,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *StudentRepository) applyFilter(builder squirrel.SelectBuilder, filter StudentFilter) squirrel.SelectBuilder {
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"registration_number": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	return builder
}

// GetAll lists students matching the filter, ordered by name
func (r *StudentRepository) GetAll(ctx context.Context, filter StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	countSQL, countArgs, err := r.applyFilter(r.sb.Select("COUNT(*)").From("students"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student count query: %w", err)
	}

	listSQL, listArgs, err := r.applyFilter(r.sb.Select(studentColumns...).From("students"), filter).
		OrderBy("full_name", "id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build student list query: %w", err)
	}

	var students []*models.Student
	var total int64
	err = r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return err
		}

		rows, err := q.Query(ctx, listSQL, listArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var student models.Student
			if err := scanStudent(rows, &student); err != nil {
				return err
			}
			students = append(students, &student)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	return students, total, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	var student models.Student
	err = r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		return scanStudent(q.QueryRow(ctx, sql, args...), &student)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			INSERT INTO students (registration_number, full_name, cpf, email, birth_date, phone, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		return q.QueryRow(ctx, query,
			student.RegistrationNumber,
			student.FullName,
			student.CPF,
			student.Email,
			student.BirthDate,
			student.Phone,
			student.Status,
		).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	})
	if err != nil {
		return mapStudentWriteError(err)
	}
	return nil
}

// Update replaces the mutable fields of a student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			UPDATE students
			SET registration_number = $1, full_name = $2, cpf = $3,
			    email = $4, birth_date = $5, phone = $6, status = $7
			WHERE id = $8
		`
		cmdTag, execErr := q.Exec(ctx, query,
			student.RegistrationNumber,
			student.FullName,
			student.CPF,
			student.Email,
			student.BirthDate,
			student.Phone,
			student.Status,
			student.ID,
		)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return mapStudentWriteError(err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStatus flips only the lifecycle status of a student
func (r *StudentRepository) UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx,
			`UPDATE students SET status = $1 WHERE id = $2`, status, id)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return mapStudentWriteError(err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student and, through the cascade, their enrollments
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
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
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func mapStudentWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_registration_number_key"):
		return apperrors.ErrRegistrationNumberExists
	case dberrors.IsDuplicateConstraintError(err, "students_cpf_key"):
		return apperrors.ErrCPFAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
		return apperrors.ErrStudentEmailAlreadyExists
	case dberrors.IsPolicyDenial(err):
		return apperrors.ErrPermissionDenied
	}
	logger.Error().Err(err).Msg("Error writing student")
	return fmt.Errorf("error writing student: %w", err)
}
