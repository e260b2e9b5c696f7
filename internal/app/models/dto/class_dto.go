package dto

// CreateClassRequest represents a request to create a class section
type CreateClassRequest struct {
	CourseID      int64  `json:"courseId" binding:"required,min=1"`
	TeacherID     int64  `json:"teacherId" binding:"required,min=1"`
	SectionNumber string `json:"sectionNumber" binding:"required,min=1,max=10"`
	Semester      string `json:"semester" binding:"required,min=1,max=20"`
	Year          int    `json:"year" binding:"required,min=1900,max=2200"`
}

// UpdateClassRequest represents a class update (admin only)
type UpdateClassRequest struct {
	TeacherID     *int64  `json:"teacherId" binding:"omitempty,min=1"`
	SectionNumber *string `json:"sectionNumber" binding:"omitempty,min=1,max=10"`
	Semester      *string `json:"semester" binding:"omitempty,min=1,max=20"`
	Year          *int    `json:"year" binding:"omitempty,min=1900,max=2200"`
}
