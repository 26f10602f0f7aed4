package services

import (
	"context"
	"testing"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnrollmentRepo struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[int64]*models.Enrollment), nextID: 1}
}

func (f *fakeEnrollmentRepo) GetAllWithRelations(context.Context) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	for _, e := range f.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = f.nextID
	f.nextID++
	f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	existing, ok := f.enrollments[enrollment.ID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	existing.EntryYear = enrollment.EntryYear
	existing.EntryTerm = enrollment.EntryTerm
	return nil
}

func (f *fakeEnrollmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func TestCreateEnrollment(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo, zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		StudentID: 1, CourseID: 2, EntryYear: 2025, EntryTerm: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)
}

func TestCreateEnrollmentValidation(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo, zerolog.Nop())

	tests := []struct {
		name  string
		req   dto.CreateEnrollmentRequest
		field string
	}{
		{"year too small", dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1, EntryYear: 1800, EntryTerm: 1}, "entryYear"},
		{"year too large", dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1, EntryYear: 2200, EntryTerm: 1}, "entryYear"},
		{"term out of range", dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1, EntryYear: 2025, EntryTerm: 3}, "entryTerm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEnrollment(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
}

func TestCreateEnrollmentDuplicatePair(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo, zerolog.Nop())

	req := dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 2, EntryYear: 2025, EntryTerm: 1}
	_, err := svc.CreateEnrollment(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestUpdateEnrollment(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	svc := NewEnrollmentService(repo, zerolog.Nop())

	created, err := svc.CreateEnrollment(context.Background(), dto.CreateEnrollmentRequest{
		StudentID: 1, CourseID: 2, EntryYear: 2025, EntryTerm: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEnrollment(context.Background(), created.ID, dto.UpdateEnrollmentRequest{
		EntryYear: 2026, EntryTerm: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, updated.EntryYear)
	assert.Equal(t, 2, updated.EntryTerm)
}

func TestRoleServiceUnknownRole(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, zerolog.Nop())

	err := svc.GrantRole(context.Background(), dto.GrantRoleRequest{UserID: 1, Role: "superuser"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownRole)

	err = svc.GrantRole(context.Background(), dto.GrantRoleRequest{UserID: 1, Role: "reader"})
	require.NoError(t, err)

	err = svc.GrantRole(context.Background(), dto.GrantRoleRequest{UserID: 1, Role: "reader"})
	assert.ErrorIs(t, err, apperrors.ErrRoleAlreadyGranted)
}
