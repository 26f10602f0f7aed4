package dto

// CreateCourseRequest creates a new course
type CreateCourseRequest struct {
	Name          string `json:"name" binding:"required" example:"Software Engineering"`
	Code          string `json:"code" binding:"required" example:"ENG-SW"`
	DurationTerms int    `json:"durationTerms" binding:"required" example:"8"`
}

// UpdateCourseRequest updates an existing course
type UpdateCourseRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationTerms int    `json:"durationTerms" binding:"required"`
}
