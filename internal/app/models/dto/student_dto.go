package dto

// CreateStudentRequest creates a new student record
type CreateStudentRequest struct {
	RegistrationNumber string  `json:"registrationNumber" binding:"required" example:"2025-1-0042"`
	FullName           string  `json:"fullName" binding:"required" example:"João Pereira"`
	CPF                string  `json:"cpf" binding:"required" example:"123.456.789-00"`
	Email              string  `json:"email" binding:"required" example:"joao@sisacad.edu.br"`
	BirthDate          string  `json:"birthDate" binding:"required" example:"2001-03-15"`
	Phone              *string `json:"phone,omitempty" example:"(11) 98765-4321"`
}

// UpdateStudentRequest updates an existing student record
type UpdateStudentRequest struct {
	RegistrationNumber string  `json:"registrationNumber" binding:"required"`
	FullName           string  `json:"fullName" binding:"required"`
	CPF                string  `json:"cpf" binding:"required"`
	Email              string  `json:"email" binding:"required"`
	BirthDate          string  `json:"birthDate" binding:"required"`
	Phone              *string `json:"phone,omitempty"`
	Status             string  `json:"status" binding:"required" example:"ACTIVE"`
}

// UpdateStudentStatusRequest flips the lifecycle status only
type UpdateStudentStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SUSPENDED"`
}

// StudentListQuery filters the student listing
type StudentListQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
}
