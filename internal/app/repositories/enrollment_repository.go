package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for course and class
// enrollments. All inserts are insert-first: the unique constraint on
// (student, course) / (student, class) is the only duplicate check.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCourseEnrollment inserts a course enrollment row. A unique violation
// on (student_id, course_id) means the student is already enrolled; a foreign
// key violation means the course vanished between lookup and insert.
func (r *EnrollmentRepository) CreateCourseEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	sql, args, err := r.sb.Insert("course_enrollments").
		Columns("student_id", "course_id", "status").
		Values(enrollment.StudentID, enrollment.CourseID, enrollment.Status).
		Suffix("RETURNING id, enrollment_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course enrollment insert: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.EnrollmentDate)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_course_enrollment") {
			return apperrors.ErrAlreadyEnrolled
		}
		if pgErr, ok := dberrors.AsPgError(err); ok && dberrors.IsForeignKeyViolation(err) {
			if pgErr.ConstraintName == "course_enrollments_course_id_fkey" {
				return apperrors.ErrCourseNotFound
			}
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating course enrollment: %w", err)
	}

	return nil
}

// DeleteCourseEnrollment removes a course enrollment row
func (r *EnrollmentRepository) DeleteCourseEnrollment(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("course_enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course enrollment delete: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// GetCourseEnrollment retrieves a single course enrollment
func (r *EnrollmentRepository) GetCourseEnrollment(ctx context.Context, studentID, courseID int64) (*models.CourseEnrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "enrollment_date", "status").
		From("course_enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course enrollment query: %w", err)
	}

	enrollment := &models.CourseEnrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID,
		&enrollment.EnrollmentDate, &enrollment.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving course enrollment: %w", err)
	}

	return enrollment, nil
}

// GetCourseEnrollmentsByCourse returns all enrollments of a course
func (r *EnrollmentRepository) GetCourseEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.CourseEnrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "enrollment_date", "status").
		From("course_enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("enrollment_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing course enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.CourseEnrollment
	for rows.Next() {
		enrollment := &models.CourseEnrollment{}
		if err := rows.Scan(&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID,
			&enrollment.EnrollmentDate, &enrollment.Status); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// CreateClassEnrollment inserts a class enrollment row. A unique violation on
// (student_id, class_id) means the student is already enrolled.
func (r *EnrollmentRepository) CreateClassEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error {
	sql, args, err := r.sb.Insert("class_enrollments").
		Columns("student_id", "class_id", "status").
		Values(enrollment.StudentID, enrollment.ClassID, enrollment.Status).
		Suffix("RETURNING id, enrollment_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build class enrollment insert: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.EnrollmentDate)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_class_enrollment") {
			return apperrors.ErrAlreadyEnrolled
		}
		if pgErr, ok := dberrors.AsPgError(err); ok && dberrors.IsForeignKeyViolation(err) {
			if pgErr.ConstraintName == "class_enrollments_class_id_fkey" {
				return apperrors.ErrClassNotFound
			}
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating class enrollment: %w", err)
	}

	return nil
}

// DeleteClassEnrollment removes a class enrollment row
func (r *EnrollmentRepository) DeleteClassEnrollment(ctx context.Context, studentID, classID int64) error {
	sql, args, err := r.sb.Delete("class_enrollments").
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build class enrollment delete: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting class enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// GetClassEnrollment retrieves a single class enrollment
func (r *EnrollmentRepository) GetClassEnrollment(ctx context.Context, studentID, classID int64) (*models.ClassEnrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "class_id", "enrollment_date", "status").
		From("class_enrollments").
		Where(squirrel.Eq{"student_id": studentID, "class_id": classID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class enrollment query: %w", err)
	}

	enrollment := &models.ClassEnrollment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
		&enrollment.EnrollmentDate, &enrollment.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving class enrollment: %w", err)
	}

	return enrollment, nil
}

// GetClassEnrollmentsByClass returns all enrollments of a class section
func (r *EnrollmentRepository) GetClassEnrollmentsByClass(ctx context.Context, classID int64) ([]*models.ClassEnrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "class_id", "enrollment_date", "status").
		From("class_enrollments").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("enrollment_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing class enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.ClassEnrollment
	for rows.Next() {
		enrollment := &models.ClassEnrollment{}
		if err := rows.Scan(&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID,
			&enrollment.EnrollmentDate, &enrollment.Status); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
