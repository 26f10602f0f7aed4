package models

import "time"

// Enrollment links a student to a course (matrícula) with the entry
// year/term. A student enrolls in a given course at most once.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	EntryYear int       `json:"entryYear" db:"entry_year"`
	EntryTerm int       `json:"entryTerm" db:"entry_term"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated by the embedded listing)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
