package models

import "time"

// StudentStatus is the lifecycle status from the 'student_status' enum
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusInactive  StudentStatus = "INACTIVE"
	StudentStatusSuspended StudentStatus = "SUSPENDED"
	StudentStatusGraduated StudentStatus = "GRADUATED"
)

// IsValid reports whether the status is a known enum value
func (s StudentStatus) IsValid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusSuspended, StudentStatusGraduated:
		return true
	}
	return false
}

// Student represents a student (aluno) from the 'students' table.
// Removing a student from the UI is a soft transition to INACTIVE, never a
// row delete.
type Student struct {
	ID                 int64         `json:"id" db:"id"`
	RegistrationNumber string        `json:"registrationNumber" db:"registration_number"`
	FullName           string        `json:"fullName" db:"full_name"`
	CPF                string        `json:"cpf" db:"cpf"`
	Email              string        `json:"email" db:"email"`
	BirthDate          time.Time     `json:"birthDate" db:"birth_date"`
	Phone              *string       `json:"phone,omitempty" db:"phone"`
	Status             StudentStatus `json:"status" db:"status"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" db:"updated_at"`
}
