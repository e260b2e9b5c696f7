package models

import "time"

// Course represents a course in the catalog.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	CourseCode  string    `json:"courseCode" db:"course_code"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	TeacherID   *int64    `json:"teacherId,omitempty" db:"teacher_id"` // Nullable weak reference to the owning teacher
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Teacher *User `json:"teacher,omitempty"`
}
