package services

import (
	"context"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
)

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - ProfileService: profile reads and the owner's profile update
// - RoleService: role assignment management
// - CourseService: course catalog management
// - StudentService: student records and lifecycle status
// - EnrollmentService: student-course enrollments

// IAuthService handles authentication operations
type IAuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID int64) error
}

// IProfileService handles profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	ListProfiles(ctx context.Context, page, pageSize int) ([]*models.Profile, *dto.PaginationInfo, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.Profile, error)
}

// IRoleService handles role assignment operations
type IRoleService interface {
	GrantRole(ctx context.Context, req dto.GrantRoleRequest) error
	RevokeRole(ctx context.Context, userID int64, role string) error
	ListUserRoles(ctx context.Context, userID int64) ([]models.Role, error)
}

// ICourseService handles course catalog operations
type ICourseService interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// IStudentService handles student record operations
type IStudentService interface {
	GetStudents(ctx context.Context, query dto.StudentListQuery, page, pageSize int) ([]*models.Student, *dto.PaginationInfo, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error)
	UpdateStudentStatus(ctx context.Context, id int64, req dto.UpdateStudentStatusRequest) error
	DeactivateStudent(ctx context.Context, id int64) error
	DeleteStudent(ctx context.Context, id int64) error
}

// IEnrollmentService handles enrollment operations
type IEnrollmentService interface {
	GetEnrollments(ctx context.Context) ([]*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest) (*models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, id int64, req dto.UpdateEnrollmentRequest) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

// Services holds all the service instances
type Services struct {
	AuthService       IAuthService
	ProfileService    IProfileService
	RoleService       IRoleService
	CourseService     ICourseService
	StudentService    IStudentService
	EnrollmentService IEnrollmentService
}
