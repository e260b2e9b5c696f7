package models

import "time"

// CourseEnrollment links a student to a course. (student_id, course_id) is
// unique: a student is enrolled in a given course at most once.
type CourseEnrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
}

// ClassEnrollment links a student to a class section. (student_id, class_id)
// is unique.
type ClassEnrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	ClassID        int64            `json:"classId" db:"class_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
}
