package services

import (
	"context"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// ClassStore is the class persistence surface the catalog needs.
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Class, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Class, error)
	GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// CourseReader looks up courses for cross-entity checks.
type CourseReader interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// ClassService handles class section operations
type ClassService struct {
	classes ClassStore
	courses CourseReader
	users   UserStore
	authz   *authz.AuthorizationService
}

// NewClassService creates a new ClassService
func NewClassService(classes ClassStore, courses CourseReader, users UserStore, authzService *authz.AuthorizationService) *ClassService {
	return &ClassService{
		classes: classes,
		courses: courses,
		users:   users,
		authz:   authzService,
	}
}

// CreateClass creates a class section (admin only). The course must exist
// and the teacher must hold the teacher role. The section uniqueness check
// stays with the store constraint.
func (s *ClassService) CreateClass(ctx context.Context, actorID int64, req *dto.CreateClassRequest) (*models.Class, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionCreateClass, authz.Target{}); err != nil {
		return nil, err
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	if err := requireTeacher(ctx, s.users, req.TeacherID); err != nil {
		return nil, err
	}

	class := &models.Class{
		CourseID:      req.CourseID,
		TeacherID:     req.TeacherID,
		SectionNumber: req.SectionNumber,
		Semester:      req.Semester,
		Year:          req.Year,
	}

	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	logger.Info().Int64("classID", class.ID).Int64("courseID", class.CourseID).Msg("Class created")
	return class, nil
}

// GetClass returns a class by ID
func (s *ClassService) GetClass(ctx context.Context, classID int64) (*models.Class, error) {
	return s.classes.GetByID(ctx, classID)
}

// ListClasses returns the classes visible to the actor: admins see all,
// teachers the sections they teach, students the sections they are
// enrolled in.
func (s *ClassService) ListClasses(ctx context.Context, actorID int64) ([]*models.Class, error) {
	actor, err := s.authz.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	switch authz.ListScopeFor(actor.Role) {
	case authz.ScopeAll:
		return s.classes.GetAll(ctx)
	case authz.ScopeTaught:
		return s.classes.GetByTeacherID(ctx, actor.ID)
	default:
		return s.classes.GetEnrolledByStudentID(ctx, actor.ID)
	}
}

// ListClassesByCourse returns the sections of a course
func (s *ClassService) ListClassesByCourse(ctx context.Context, courseID int64) ([]*models.Class, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.classes.GetByCourseID(ctx, courseID)
}

// UpdateClass applies a partial update (admin only; the assigned teacher may
// not modify the section).
func (s *ClassService) UpdateClass(ctx context.Context, actorID, classID int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionUpdateClass, authz.Target{}); err != nil {
		return nil, err
	}

	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if req.TeacherID != nil {
		if err := requireTeacher(ctx, s.users, *req.TeacherID); err != nil {
			return nil, err
		}
		class.TeacherID = *req.TeacherID
	}
	if req.SectionNumber != nil {
		class.SectionNumber = *req.SectionNumber
	}
	if req.Semester != nil {
		class.Semester = *req.Semester
	}
	if req.Year != nil {
		class.Year = *req.Year
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// DeleteClass removes a class (admin only). A class with enrollments is
// rejected with a conflict.
func (s *ClassService) DeleteClass(ctx context.Context, actorID, classID int64) error {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionDeleteClass, authz.Target{}); err != nil {
		return err
	}

	if err := s.classes.Delete(ctx, classID); err != nil {
		return err
	}

	logger.Info().Int64("classID", classID).Int64("actorID", actorID).Msg("Class deleted")
	return nil
}
