package repositories

import (
	"github.com/lfarias/sisacad/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	ProfileRepository    *ProfileRepository
	RoleRepository       *RoleRepository
	CourseRepository     *CourseRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database),
		TokenRepository:      NewTokenRepository(database),
		ProfileRepository:    NewProfileRepository(database),
		RoleRepository:       NewRoleRepository(database),
		CourseRepository:     NewCourseRepository(database),
		StudentRepository:    NewStudentRepository(database),
		EnrollmentRepository: NewEnrollmentRepository(database),
	}
}
