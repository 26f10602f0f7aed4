package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "matching unique violation",
			err:        pgError(CodeUniqueViolation, "courses_code_key"),
			constraint: "courses_code_key",
			want:       true,
		},
		{
			name:       "unique violation on different constraint",
			err:        pgError(CodeUniqueViolation, "courses_name_key"),
			constraint: "courses_code_key",
			want:       false,
		},
		{
			name:       "non-unique error code",
			err:        pgError(CodeForeignKeyViolation, "courses_code_key"),
			constraint: "courses_code_key",
			want:       false,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			constraint: "courses_code_key",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateConstraintError(tt.err, tt.constraint))
		})
	}
}

func TestIsUniqueViolation_Wrapped(t *testing.T) {
	err := fmt.Errorf("error creating course: %w", pgError(CodeUniqueViolation, "courses_code_key"))
	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, "courses_code_key", ConstraintName(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := pgError(CodeForeignKeyViolation, "enrollments_course_id_fkey")

	assert.True(t, IsForeignKeyViolation(err, ""))
	assert.True(t, IsForeignKeyViolation(err, "enrollments_course_id_fkey"))
	assert.False(t, IsForeignKeyViolation(err, "enrollments_student_id_fkey"))
	assert.False(t, IsForeignKeyViolation(errors.New("boom"), ""))
}

func TestIsPolicyDenial(t *testing.T) {
	assert.True(t, IsPolicyDenial(pgError(CodeInsufficientPrivilege, "")))
	assert.False(t, IsPolicyDenial(pgError(CodeUniqueViolation, "")))
	assert.False(t, IsPolicyDenial(nil))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, IsCheckViolation(pgError(CodeCheckViolation, "courses_duration_terms_check")))
	assert.False(t, IsCheckViolation(pgError(CodeUniqueViolation, "")))
}
