package dto

// CreateEnrollmentRequest enrolls a student in a course
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required" example:"1"`
	CourseID  int64 `json:"courseId" binding:"required" example:"2"`
	EntryYear int   `json:"entryYear" binding:"required" example:"2025"`
	EntryTerm int   `json:"entryTerm" binding:"required" example:"1"`
}

// UpdateEnrollmentRequest changes the entry year/term of an enrollment
type UpdateEnrollmentRequest struct {
	EntryYear int `json:"entryYear" binding:"required"`
	EntryTerm int `json:"entryTerm" binding:"required"`
}
