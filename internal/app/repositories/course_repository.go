package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/dberrors"
)

const courseColumns = `id, course_code, title, description, teacher_id, is_active, created_at, updated_at`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.CourseCode, &course.Title, &course.Description,
		&course.TeacherID, &course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a new course. The course_code unique constraint is the
// authoritative duplicate signal.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (course_code, title, description, teacher_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		course.CourseCode, course.Title, course.Description, course.TeacherID, course.IsActive).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByCourseCode retrieves a course by its unique code
func (r *CourseRepository) GetByCourseCode(ctx context.Context, code string) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE course_code = $1`, code))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course by code: %w", err)
	}

	return course, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetAll returns every course ordered by course code
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.queryCourses(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		ORDER BY course_code`)
}

// GetByTeacherID returns courses assigned to a teacher
func (r *CourseRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return r.queryCourses(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE teacher_id = $1
		ORDER BY course_code`, teacherID)
}

// GetEnrolledByStudentID returns courses a student is actively enrolled in.
// Completed and dropped enrollments do not widen the student's scope.
func (r *CourseRepository) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return r.queryCourses(ctx, `
		SELECT c.id, c.course_code, c.title, c.description, c.teacher_id, c.is_active, c.created_at, c.updated_at
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.id
		WHERE ce.student_id = $1 AND ce.status = 'active'
		ORDER BY c.course_code`, studentID)
}

// Update persists the mutable course fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, teacher_id = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5`,
		course.Title, course.Description, course.TeacherID, course.IsActive, course.ID)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. Classes and enrollments reference courses with
// RESTRICT constraints, so the foreign key violation is the conflict signal.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasEnrollments
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
