package models

import "time"

// Class represents a section of a course taught by a teacher in a given term.
// The tuple (course_id, section_number, semester, year) is unique.
type Class struct {
	ID            int64     `json:"id" db:"id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	TeacherID     int64     `json:"teacherId" db:"teacher_id"`
	SectionNumber string    `json:"sectionNumber" db:"section_number"`
	Semester      string    `json:"semester" db:"semester"`
	Year          int       `json:"year" db:"year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course  *Course `json:"course,omitempty"`
	Teacher *User   `json:"teacher,omitempty"`
}
