package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/sisacad/internal/app/controllers"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/middleware"
)

// SetupRouter configures all application routes.
//
// The RequireRoleHint gates on write routes are a fast-fail convenience:
// even without them, a non-admin write would be rejected by the row-level
// policies inside the database.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	roleController *controllers.RoleController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/logout-all", authController.LogoutAll)

		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("", profileController.ListProfiles)
			profiles.GET("/me", profileController.GetMyProfile)
			profiles.PUT("/me", profileController.UpdateMyProfile)
			profiles.GET("/:id", profileController.GetProfileByID)
		}

		adminHint := authMiddleware.RequireRoleHint(string(models.RoleAdmin))

		roles := authenticated.Group("/roles")
		{
			roles.GET("/:userId", roleController.ListUserRoles)

			rolesAdmin := roles.Group("")
			rolesAdmin.Use(adminHint)
			{
				rolesAdmin.POST("", roleController.GrantRole)
				rolesAdmin.DELETE("/:userId/:role", roleController.RevokeRole)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(adminHint)
			{
				coursesAdmin.POST("", courseController.CreateCourse)
				coursesAdmin.PUT("/:id", courseController.UpdateCourse)
				coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
			}
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetStudents)
			students.GET("/:id", studentController.GetStudentByID)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(adminHint)
			{
				studentsAdmin.POST("", studentController.CreateStudent)
				studentsAdmin.PUT("/:id", studentController.UpdateStudent)
				studentsAdmin.PATCH("/:id/status", studentController.UpdateStudentStatus)
				studentsAdmin.DELETE("/:id", studentController.DeactivateStudent)
				studentsAdmin.DELETE("/:id/permanent", studentController.DeleteStudent)
			}
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.GetEnrollments)

			enrollmentsAdmin := enrollments.Group("")
			enrollmentsAdmin.Use(adminHint)
			{
				enrollmentsAdmin.POST("", enrollmentController.CreateEnrollment)
				enrollmentsAdmin.PUT("/:id", enrollmentController.UpdateEnrollment)
				enrollmentsAdmin.DELETE("/:id", enrollmentController.DeleteEnrollment)
			}
		}
	}
}
