package services

import (
	"context"
	"fmt"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// CourseStore is the course persistence surface the catalog needs.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error)
	GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService handles course catalog operations
type CourseService struct {
	courses CourseStore
	users   UserStore
	authz   *authz.AuthorizationService
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, users UserStore, authzService *authz.AuthorizationService) *CourseService {
	return &CourseService{
		courses: courses,
		users:   users,
		authz:   authzService,
	}
}

// CreateCourse creates a course (admin only). A teacher assignment is
// optional, but when present it must reference a user holding the teacher
// role.
func (s *CourseService) CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionCreateCourse, authz.Target{}); err != nil {
		return nil, err
	}

	if req.TeacherID != nil {
		if err := requireTeacher(ctx, s.users, *req.TeacherID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		CourseCode:  req.CourseCode,
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		IsActive:    true,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseID", course.ID).Str("courseCode", course.CourseCode).Msg("Course created")
	return course, nil
}

// GetCourse returns a course by ID. Any authenticated user may view the
// catalog.
func (s *CourseService) GetCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, courseID)
}

// ListCourses returns the courses visible to the actor: admins see all,
// teachers the courses they own, students the courses they are enrolled in.
func (s *CourseService) ListCourses(ctx context.Context, actorID int64) ([]*models.Course, error) {
	actor, err := s.authz.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	switch authz.ListScopeFor(actor.Role) {
	case authz.ScopeAll:
		return s.courses.GetAll(ctx)
	case authz.ScopeTaught:
		return s.courses.GetByTeacherID(ctx, actor.ID)
	default:
		return s.courses.GetEnrolledByStudentID(ctx, actor.ID)
	}
}

// UpdateCourse applies a partial update. Admins and the owning teacher may
// update; the updatable fields are title, description and active flag only.
func (s *CourseService) UpdateCourse(ctx context.Context, actorID, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionUpdateCourse, authz.Target{CourseTeacherID: course.TeacherID}); err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course. Admins and the owning teacher may delete;
// a course with classes or enrollments is rejected with a conflict.
func (s *CourseService) DeleteCourse(ctx context.Context, actorID, courseID int64) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionDeleteCourse, authz.Target{CourseTeacherID: course.TeacherID}); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	logger.Info().Int64("courseID", courseID).Int64("actorID", actorID).Msg("Course deleted")
	return nil
}

// requireTeacher checks that a user exists and holds the teacher role before
// it is assigned to a course or class.
func requireTeacher(ctx context.Context, users UserStore, teacherID int64) error {
	teacher, err := users.GetUserByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher.Role != models.RoleTeacher {
		return apperrors.NewBadRequestError(fmt.Sprintf("user %d is not a teacher", teacherID))
	}
	return nil
}
