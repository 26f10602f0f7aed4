package models

import "time"

// Course represents a course (curso) from the 'courses' table.
type Course struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Code          string    `json:"code" db:"code"`
	DurationTerms int       `json:"durationTerms" db:"duration_terms"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
