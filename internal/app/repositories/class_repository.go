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

const classColumns = `id, course_id, teacher_id, section_number, semester, year, created_at, updated_at`

// ClassRepository handles database operations for class sections
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	class := &models.Class{}
	err := row.Scan(
		&class.ID, &class.CourseID, &class.TeacherID, &class.SectionNumber,
		&class.Semester, &class.Year, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return class, nil
}

// Create inserts a new class section. The (course, section, semester, year)
// unique constraint is the authoritative duplicate signal; foreign key
// violations distinguish a missing course from a missing teacher.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO classes (course_id, teacher_id, section_number, semester, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		class.CourseID, class.TeacherID, class.SectionNumber, class.Semester, class.Year).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_class_section") {
			return apperrors.ErrClassSectionExists
		}
		if pgErr, ok := dberrors.AsPgError(err); ok && dberrors.IsForeignKeyViolation(err) {
			if pgErr.ConstraintName == "classes_course_id_fkey" {
				return apperrors.ErrCourseNotFound
			}
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	class, err := scanClass(r.db.QueryRow(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

func (r *ClassRepository) queryClasses(ctx context.Context, query string, args ...interface{}) ([]*models.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// GetAll returns every class section
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	return r.queryClasses(ctx, `
		SELECT `+classColumns+`
		FROM classes
		ORDER BY course_id, year, semester, section_number`)
}

// GetByCourseID returns the sections of a course
func (r *ClassRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE course_id = $1
		ORDER BY year, semester, section_number`, courseID)
}

// GetByTeacherID returns classes taught by a teacher
func (r *ClassRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE teacher_id = $1
		ORDER BY course_id, year, semester, section_number`, teacherID)
}

// GetEnrolledByStudentID returns classes a student is actively enrolled in.
// Completed and dropped enrollments do not widen the student's scope.
func (r *ClassRepository) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx, `
		SELECT cl.id, cl.course_id, cl.teacher_id, cl.section_number, cl.semester, cl.year, cl.created_at, cl.updated_at
		FROM classes cl
		JOIN class_enrollments ce ON ce.class_id = cl.id
		WHERE ce.student_id = $1 AND ce.status = 'active'
		ORDER BY cl.course_id, cl.year, cl.semester, cl.section_number`, studentID)
}

// Update persists the mutable class fields
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE classes
		SET teacher_id = $1, section_number = $2, semester = $3, year = $4, updated_at = NOW()
		WHERE id = $5`,
		class.TeacherID, class.SectionNumber, class.Semester, class.Year, class.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_class_section") {
			return apperrors.ErrClassSectionExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete removes a class. Enrollments reference classes with a RESTRICT
// constraint, so the foreign key violation is the conflict signal.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrClassHasEnrollments
		}
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
