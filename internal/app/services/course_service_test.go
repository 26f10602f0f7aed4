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

type fakeCourseRepo struct {
	courses    map[int64]*models.Course
	nextID     int64
	enrolled   map[int64]bool
	duplicates bool
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:  make(map[int64]*models.Course),
		enrolled: make(map[int64]bool),
		nextID:   1,
	}
}

func (f *fakeCourseRepo) GetAll(context.Context) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	if f.duplicates {
		return apperrors.ErrCourseAlreadyExists
	}
	course.ID = f.nextID
	f.nextID++
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if f.enrolled[id] {
		return apperrors.ErrCourseHasEnrollments
	}
	delete(f.courses, id)
	return nil
}

func TestCreateCourse(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())

	course, err := svc.CreateCourse(context.Background(), dto.CreateCourseRequest{
		Name:          "Software Engineering",
		Code:          "eng-sw",
		DurationTerms: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "ENG-SW", course.Code, "course codes are normalized to upper case")
	assert.NotZero(t, course.ID)
}

func TestCreateCourseValidation(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())

	tests := []struct {
		name  string
		req   dto.CreateCourseRequest
		field string
	}{
		{"empty name", dto.CreateCourseRequest{Name: " ", Code: "X", DurationTerms: 8}, "name"},
		{"empty code", dto.CreateCourseRequest{Name: "X", Code: "", DurationTerms: 8}, "code"},
		{"zero duration", dto.CreateCourseRequest{Name: "X", Code: "X", DurationTerms: 0}, "durationTerms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.field, apperrors.FieldOf(err))
		})
	}
}

func TestCreateCourseDuplicate(t *testing.T) {
	repo := newFakeCourseRepo()
	repo.duplicates = true
	svc := NewCourseService(repo, zerolog.Nop())

	_, err := svc.CreateCourse(context.Background(), dto.CreateCourseRequest{
		Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestDeleteCourseWithEnrollments(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())

	course, err := svc.CreateCourse(context.Background(), dto.CreateCourseRequest{
		Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8,
	})
	require.NoError(t, err)
	repo.enrolled[course.ID] = true

	err = svc.DeleteCourse(context.Background(), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseHasEnrollments)

	// course survives the failed delete
	_, err = svc.GetCourseByID(context.Background(), course.ID)
	assert.NoError(t, err)
}
