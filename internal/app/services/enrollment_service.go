package services

import (
	"context"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// EnrollmentStore is the enrollment persistence surface. Inserts must be
// insert-first: the unique constraint decides duplicates, so there is no
// exists-method here at all.
type EnrollmentStore interface {
	CreateCourseEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	DeleteCourseEnrollment(ctx context.Context, studentID, courseID int64) error
	GetCourseEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.CourseEnrollment, error)
	CreateClassEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error
	DeleteClassEnrollment(ctx context.Context, studentID, classID int64) error
	GetClassEnrollmentsByClass(ctx context.Context, classID int64) ([]*models.ClassEnrollment, error)
}

// ClassReader looks up classes for roster checks.
type ClassReader interface {
	GetByID(ctx context.Context, id int64) (*models.Class, error)
}

// EnrollmentService handles course and class enrollment
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseReader
	classes     ClassReader
	authz       *authz.AuthorizationService
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseReader, classes ClassReader, authzService *authz.AuthorizationService) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		classes:     classes,
		authz:       authzService,
	}
}

// EnrollInCourse enrolls the acting student in a course. The row is inserted
// directly; the unique constraint reports a duplicate and the foreign key
// reports a course deleted since the client last looked. Under concurrent
// duplicate requests exactly one insert wins.
func (s *EnrollmentService) EnrollInCourse(ctx context.Context, actorID, courseID int64) (*models.CourseEnrollment, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionEnroll, authz.Target{UserID: actorID}); err != nil {
		return nil, err
	}

	enrollment := &models.CourseEnrollment{
		StudentID: actorID,
		CourseID:  courseID,
		Status:    models.EnrollmentActive,
	}

	if err := s.enrollments.CreateCourseEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", actorID).Int64("courseID", courseID).Msg("Student enrolled in course")
	return enrollment, nil
}

// UnenrollFromCourse removes the acting student's course enrollment. The row
// is deleted outright; a second unenroll finds nothing and reports not found.
func (s *EnrollmentService) UnenrollFromCourse(ctx context.Context, actorID, courseID int64) error {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionEnroll, authz.Target{UserID: actorID}); err != nil {
		return err
	}

	if err := s.enrollments.DeleteCourseEnrollment(ctx, actorID, courseID); err != nil {
		return err
	}

	logger.Info().Int64("studentID", actorID).Int64("courseID", courseID).Msg("Student unenrolled from course")
	return nil
}

// EnrollInClass enrolls the acting student in a class section
func (s *EnrollmentService) EnrollInClass(ctx context.Context, actorID, classID int64) (*models.ClassEnrollment, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionEnroll, authz.Target{UserID: actorID}); err != nil {
		return nil, err
	}

	enrollment := &models.ClassEnrollment{
		StudentID: actorID,
		ClassID:   classID,
		Status:    models.EnrollmentActive,
	}

	if err := s.enrollments.CreateClassEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", actorID).Int64("classID", classID).Msg("Student enrolled in class")
	return enrollment, nil
}

// UnenrollFromClass removes the acting student's class enrollment
func (s *EnrollmentService) UnenrollFromClass(ctx context.Context, actorID, classID int64) error {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionEnroll, authz.Target{UserID: actorID}); err != nil {
		return err
	}

	if err := s.enrollments.DeleteClassEnrollment(ctx, actorID, classID); err != nil {
		return err
	}

	logger.Info().Int64("studentID", actorID).Int64("classID", classID).Msg("Student unenrolled from class")
	return nil
}

// ListCourseEnrollments returns the roster of a course. Visible to admins
// and the owning teacher.
func (s *EnrollmentService) ListCourseEnrollments(ctx context.Context, actorID, courseID int64) ([]*models.CourseEnrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	actor, err := s.authz.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !rosterVisible(actor, course.TeacherID) {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.enrollments.GetCourseEnrollmentsByCourse(ctx, courseID)
}

// ListClassEnrollments returns the roster of a class section. Visible to
// admins and the teacher assigned to the section.
func (s *EnrollmentService) ListClassEnrollments(ctx context.Context, actorID, classID int64) ([]*models.ClassEnrollment, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	actor, err := s.authz.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !rosterVisible(actor, &class.TeacherID) {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.enrollments.GetClassEnrollmentsByClass(ctx, classID)
}

func rosterVisible(actor *models.User, teacherID *int64) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == models.RoleTeacher && teacherID != nil && *teacherID == actor.ID
}
