package dto

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	CourseCode  string `json:"courseCode" binding:"required,min=2,max=20"`
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	TeacherID   *int64 `json:"teacherId" binding:"omitempty,min=1"`
}

// UpdateCourseRequest represents a course update. The service applies a
// per-role allow-list on top: owning teachers may only change these three
// fields, which is also all this request carries.
type UpdateCourseRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}
