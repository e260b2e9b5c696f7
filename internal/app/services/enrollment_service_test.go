package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
)

func newEnrollmentFixture(users ...*models.User) (*EnrollmentService, *fakeEnrollmentStore, *fakeCourseStore, *fakeClassStore) {
	userStore := newFakeUserStore(users...)
	courseStore := newFakeCourseStore()
	classStore := newFakeClassStore()
	enrollmentStore := newFakeEnrollmentStore()
	authzService := authz.NewAuthorizationService(userStore)
	svc := NewEnrollmentService(enrollmentStore, courseStore, classStore, authzService)
	return svc, enrollmentStore, courseStore, classStore
}

func TestEnrollInCourse(t *testing.T) {
	student := &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	svc, _, _, _ := newEnrollmentFixture(student)

	enrollment, err := svc.EnrollInCourse(context.Background(), student.ID, 100)
	if err != nil {
		t.Fatalf("EnrollInCourse failed: %v", err)
	}
	if enrollment.StudentID != student.ID || enrollment.CourseID != 100 {
		t.Errorf("enrollment = %+v", enrollment)
	}
	if enrollment.Status != models.EnrollmentActive {
		t.Errorf("Status = %q, want active", enrollment.Status)
	}
}

func TestEnrollInCourseDuplicateConflicts(t *testing.T) {
	student := &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	svc, _, _, _ := newEnrollmentFixture(student)

	if _, err := svc.EnrollInCourse(context.Background(), student.ID, 100); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if _, err := svc.EnrollInCourse(context.Background(), student.ID, 100); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("second enroll error = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollInCourseDeniedForNonStudents(t *testing.T) {
	teacher := &models.User{ID: 2, Role: models.RoleTeacher, IsActive: true}
	admin := &models.User{ID: 3, Role: models.RoleAdmin, IsActive: true}
	svc, _, _, _ := newEnrollmentFixture(teacher, admin)

	for _, actor := range []int64{teacher.ID, admin.ID} {
		if _, err := svc.EnrollInCourse(context.Background(), actor, 100); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("actor %d enroll error = %v, want ErrPermissionDenied", actor, err)
		}
	}
}

// Concurrent duplicate requests must produce exactly one enrollment row and
// a conflict for every other request.
func TestEnrollInCourseConcurrentDuplicates(t *testing.T) {
	student := &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	svc, enrollmentStore, _, _ := newEnrollmentFixture(student)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.EnrollInCourse(context.Background(), student.ID, 100)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}

	rows, err := enrollmentStore.GetCourseEnrollmentsByCourse(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("stored rows = %d, want 1", len(rows))
	}
}

func TestUnenrollFromCourse(t *testing.T) {
	student := &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	svc, _, _, _ := newEnrollmentFixture(student)

	if _, err := svc.EnrollInCourse(context.Background(), student.ID, 100); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if err := svc.UnenrollFromCourse(context.Background(), student.ID, 100); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}

	// Second unenroll finds no row.
	if err := svc.UnenrollFromCourse(context.Background(), student.ID, 100); !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("second unenroll error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestEnrollInClassLifecycle(t *testing.T) {
	student := &models.User{ID: 1, Role: models.RoleStudent, IsActive: true}
	svc, _, _, _ := newEnrollmentFixture(student)

	enrollment, err := svc.EnrollInClass(context.Background(), student.ID, 7)
	if err != nil {
		t.Fatalf("EnrollInClass failed: %v", err)
	}
	if enrollment.ClassID != 7 {
		t.Errorf("ClassID = %d, want 7", enrollment.ClassID)
	}

	if _, err := svc.EnrollInClass(context.Background(), student.ID, 7); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Errorf("duplicate class enroll error = %v, want ErrAlreadyEnrolled", err)
	}

	if err := svc.UnenrollFromClass(context.Background(), student.ID, 7); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if err := svc.UnenrollFromClass(context.Background(), student.ID, 7); !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Errorf("second class unenroll error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestListCourseEnrollmentsVisibility(t *testing.T) {
	teacherID := int64(2)
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	owner := &models.User{ID: teacherID, Role: models.RoleTeacher, IsActive: true}
	other := &models.User{ID: 3, Role: models.RoleTeacher, IsActive: true}
	student := &models.User{ID: 4, Role: models.RoleStudent, IsActive: true}

	svc, _, courseStore, _ := newEnrollmentFixture(admin, owner, other, student)
	if err := courseStore.Create(context.Background(), &models.Course{CourseCode: "CS101", Title: "Intro", TeacherID: &teacherID}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.EnrollInCourse(context.Background(), student.ID, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	for _, actor := range []int64{admin.ID, owner.ID} {
		rows, err := svc.ListCourseEnrollments(context.Background(), actor, 1)
		if err != nil {
			t.Fatalf("actor %d list failed: %v", actor, err)
		}
		if len(rows) != 1 {
			t.Errorf("actor %d rows = %d, want 1", actor, len(rows))
		}
	}

	for _, actor := range []int64{other.ID, student.ID} {
		if _, err := svc.ListCourseEnrollments(context.Background(), actor, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("actor %d list error = %v, want ErrPermissionDenied", actor, err)
		}
	}
}
