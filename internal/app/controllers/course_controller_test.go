package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCourseService struct {
	courses   []*models.Course
	createErr error
	deleteErr error
}

func (s *stubCourseService) GetAllCourses(context.Context) ([]*models.Course, error) {
	return s.courses, nil
}

func (s *stubCourseService) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (s *stubCourseService) CreateCourse(_ context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Course{ID: 1, Name: req.Name, Code: req.Code, DurationTerms: req.DurationTerms}, nil
}

func (s *stubCourseService) UpdateCourse(_ context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	return &models.Course{ID: id, Name: req.Name, Code: req.Code, DurationTerms: req.DurationTerms}, nil
}

func (s *stubCourseService) DeleteCourse(context.Context, int64) error {
	return s.deleteErr
}

func setupCourseRouter(svc *stubCourseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewCourseController(svc)

	router.GET("/courses", controller.GetAllCourses)
	router.GET("/courses/:id", controller.GetCourseByID)
	router.POST("/courses", controller.CreateCourse)
	router.DELETE("/courses/:id", controller.DeleteCourse)
	return router
}

func TestGetAllCourses(t *testing.T) {
	svc := &stubCourseService{courses: []*models.Course{
		{ID: 1, Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8},
	}}
	router := setupCourseRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ENG-SW")
}

func TestGetCourseByIDNotFound(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/99", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
}

func TestGetCourseByIDInvalidParam(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCourse_Controller(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{})

	body, _ := json.Marshal(dto.CreateCourseRequest{
		Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8,
	})
	req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCourseConflict(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{createErr: apperrors.ErrCourseAlreadyExists})

	body, _ := json.Marshal(dto.CreateCourseRequest{
		Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8,
	})
	req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "already exists")
}

func TestCreateCourseValidationErrorCarriesField(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{
		createErr: apperrors.NewValidationError("durationTerms", "duration must be at least one term"),
	})

	body, _ := json.Marshal(dto.CreateCourseRequest{
		Name: "Software Engineering", Code: "ENG-SW", DurationTerms: 8,
	})
	req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "durationTerms", resp.Error.Field)
}

func TestDeleteCourseWithEnrollmentsConflict(t *testing.T) {
	router := setupCourseRouter(&stubCourseService{deleteErr: apperrors.ErrCourseHasEnrollments})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/1", nil))

	require.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeResourceInUse, resp.Error.Code)
}
