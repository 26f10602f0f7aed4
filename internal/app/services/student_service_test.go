package services

import (
	"context"
	"testing"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudentRepo struct {
	students   map[int64]*models.Student
	nextID     int64
	lastFilter repositories.StudentFilter
	createErr  error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentRepo) GetAll(_ context.Context, filter repositories.StudentFilter, _ uint64, _ int) ([]*models.Student, int64, error) {
	f.lastFilter = filter
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) UpdateStatus(_ context.Context, id int64, status models.StudentStatus) error {
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func validCreateRequest() dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		RegistrationNumber: "2025-1-0042",
		FullName:           "João Pereira",
		CPF:                "123.456.789-00",
		Email:              "Joao@Sisacad.edu.br",
		BirthDate:          "2001-03-15",
	}
}

func TestCreateStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zerolog.Nop())

	student, err := svc.CreateStudent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StudentStatusActive, student.Status)
	assert.Equal(t, "joao@sisacad.edu.br", student.Email)
	assert.NotZero(t, student.ID)
}

func TestCreateStudentShapeValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateStudentRequest)
		field  string
	}{
		{
			name:   "registration number missing term",
			mutate: func(r *dto.CreateStudentRequest) { r.RegistrationNumber = "2025-0042" },
			field:  "registrationNumber",
		},
		{
			name:   "registration number bad term",
			mutate: func(r *dto.CreateStudentRequest) { r.RegistrationNumber = "2025-3-0042" },
			field:  "registrationNumber",
		},
		{
			name:   "cpf without punctuation",
			mutate: func(r *dto.CreateStudentRequest) { r.CPF = "12345678900" },
			field:  "cpf",
		},
		{
			name:   "bad email",
			mutate: func(r *dto.CreateStudentRequest) { r.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:   "bad birth date",
			mutate: func(r *dto.CreateStudentRequest) { r.BirthDate = "15/03/2001" },
			field:  "birthDate",
		},
		{
			name:   "name too short",
			mutate: func(r *dto.CreateStudentRequest) { r.FullName = "J" },
			field:  "fullName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStudentRepo()
			svc := NewStudentService(repo, zerolog.Nop())

			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreateStudent(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
			assert.Empty(t, repo.students, "invalid input must not reach the repository")
		})
	}
}

func TestCreateStudentDuplicateRegistration(t *testing.T) {
	repo := newFakeStudentRepo()
	repo.createErr = apperrors.ErrRegistrationNumberExists
	svc := NewStudentService(repo, zerolog.Nop())

	_, err := svc.CreateStudent(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNumberExists)
}

func TestDeactivateStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zerolog.Nop())

	student, err := svc.CreateStudent(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateStudent(context.Background(), student.ID))
	assert.Equal(t, models.StudentStatusInactive, repo.students[student.ID].Status)

	// the record survives deactivation
	got, err := svc.GetStudentByID(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)
}

func TestUpdateStudentStatusUnknown(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zerolog.Nop())

	err := svc.UpdateStudentStatus(context.Background(), 1, dto.UpdateStudentStatusRequest{Status: "EXPELLED"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStudentStatus)
}

func TestGetStudentsRejectsUnknownStatusFilter(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zerolog.Nop())

	_, _, err := svc.GetStudents(context.Background(), dto.StudentListQuery{Status: "bogus"}, 1, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetStudentsTrimsSearch(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, zerolog.Nop())

	_, _, err := svc.GetStudents(context.Background(), dto.StudentListQuery{Search: "  maria  "}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "maria", repo.lastFilter.Search)
}
