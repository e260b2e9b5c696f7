package services

import (
	"context"
	"errors"
	"testing"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
)

func newCourseFixture(users ...*models.User) (*CourseService, *fakeCourseStore, *fakeUserStore) {
	userStore := newFakeUserStore(users...)
	courseStore := newFakeCourseStore()
	authzService := authz.NewAuthorizationService(userStore)
	return NewCourseService(courseStore, userStore, authzService), courseStore, userStore
}

func TestCreateCourseAdminOnly(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	teacher := &models.User{ID: 2, Role: models.RoleTeacher, IsActive: true}
	student := &models.User{ID: 3, Role: models.RoleStudent, IsActive: true}
	svc, _, _ := newCourseFixture(admin, teacher, student)

	req := &dto.CreateCourseRequest{CourseCode: "CS101", Title: "Intro to CS"}

	course, err := svc.CreateCourse(context.Background(), admin.ID, req)
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if !course.IsActive {
		t.Error("new course should be active")
	}
	if course.TeacherID != nil {
		t.Error("TeacherID should stay nil when not assigned")
	}

	for _, actor := range []int64{teacher.ID, student.ID} {
		req := &dto.CreateCourseRequest{CourseCode: "CS999", Title: "Nope"}
		if _, err := svc.CreateCourse(context.Background(), actor, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("actor %d create error = %v, want ErrPermissionDenied", actor, err)
		}
	}
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	svc, _, _ := newCourseFixture(admin)

	req := &dto.CreateCourseRequest{CourseCode: "CS101", Title: "Intro"}
	if _, err := svc.CreateCourse(context.Background(), admin.ID, req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	dup := &dto.CreateCourseRequest{CourseCode: "CS101", Title: "Other"}
	if _, err := svc.CreateCourse(context.Background(), admin.ID, dup); !errors.Is(err, apperrors.ErrCourseCodeExists) {
		t.Errorf("duplicate create error = %v, want ErrCourseCodeExists", err)
	}
}

func TestCreateCourseTeacherMustHoldTeacherRole(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	student := &models.User{ID: 2, Role: models.RoleStudent, IsActive: true}
	teacher := &models.User{ID: 3, Role: models.RoleTeacher, IsActive: true}
	svc, _, _ := newCourseFixture(admin, student, teacher)

	studentID := student.ID
	req := &dto.CreateCourseRequest{CourseCode: "CS101", Title: "Intro", TeacherID: &studentID}
	if _, err := svc.CreateCourse(context.Background(), admin.ID, req); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("create with non-teacher error = %v, want ErrBadRequest", err)
	}

	teacherID := teacher.ID
	ok := &dto.CreateCourseRequest{CourseCode: "CS102", Title: "Intro", TeacherID: &teacherID}
	course, err := svc.CreateCourse(context.Background(), admin.ID, ok)
	if err != nil {
		t.Fatalf("create with teacher failed: %v", err)
	}
	if course.TeacherID == nil || *course.TeacherID != teacher.ID {
		t.Errorf("TeacherID = %v, want %d", course.TeacherID, teacher.ID)
	}
}

func TestUpdateCourseOwnership(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	owner := &models.User{ID: 2, Role: models.RoleTeacher, IsActive: true}
	other := &models.User{ID: 3, Role: models.RoleTeacher, IsActive: true}
	svc, courseStore, _ := newCourseFixture(admin, owner, other)

	ownerID := owner.ID
	if err := courseStore.Create(context.Background(), &models.Course{CourseCode: "CS101", Title: "Intro", TeacherID: &ownerID, IsActive: true}); err != nil {
		t.Fatal(err)
	}

	newTitle := "Intro (revised)"
	course, err := svc.UpdateCourse(context.Background(), owner.ID, 1, &dto.UpdateCourseRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if course.Title != newTitle {
		t.Errorf("Title = %q, want %q", course.Title, newTitle)
	}

	if _, err := svc.UpdateCourse(context.Background(), other.ID, 1, &dto.UpdateCourseRequest{Title: &newTitle}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("non-owner update error = %v, want ErrPermissionDenied", err)
	}

	inactive := false
	updated, err := svc.UpdateCourse(context.Background(), admin.ID, 1, &dto.UpdateCourseRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.IsActive {
		t.Error("IsActive should be false after update")
	}
}

func TestUpdateCourseNotFound(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	svc, _, _ := newCourseFixture(admin)

	title := "x"
	if _, err := svc.UpdateCourse(context.Background(), admin.ID, 999, &dto.UpdateCourseRequest{Title: &title}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("update missing course error = %v, want ErrCourseNotFound", err)
	}
}

func TestDeleteCourseRejectedWhileReferenced(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	svc, courseStore, _ := newCourseFixture(admin)

	if err := courseStore.Create(context.Background(), &models.Course{CourseCode: "CS101", Title: "Intro"}); err != nil {
		t.Fatal(err)
	}
	courseStore.restrictDelete[1] = true

	if err := svc.DeleteCourse(context.Background(), admin.ID, 1); !errors.Is(err, apperrors.ErrCourseHasEnrollments) {
		t.Errorf("delete error = %v, want ErrCourseHasEnrollments", err)
	}

	courseStore.restrictDelete[1] = false
	if err := svc.DeleteCourse(context.Background(), admin.ID, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetCourse(context.Background(), 1); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("get after delete error = %v, want ErrCourseNotFound", err)
	}
}

func TestListCoursesScopes(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	teacher := &models.User{ID: 2, Role: models.RoleTeacher, IsActive: true}
	student := &models.User{ID: 3, Role: models.RoleStudent, IsActive: true}
	svc, courseStore, _ := newCourseFixture(admin, teacher, student)

	teacherID := teacher.ID
	ctx := context.Background()
	if err := courseStore.Create(ctx, &models.Course{CourseCode: "CS101", Title: "A", TeacherID: &teacherID}); err != nil {
		t.Fatal(err)
	}
	if err := courseStore.Create(ctx, &models.Course{CourseCode: "CS102", Title: "B"}); err != nil {
		t.Fatal(err)
	}
	courseStore.enrolledCourses[student.ID] = []int64{2}

	adminList, err := svc.ListCourses(ctx, admin.ID)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminList) != 2 {
		t.Errorf("admin sees %d courses, want 2", len(adminList))
	}

	teacherList, err := svc.ListCourses(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("teacher list failed: %v", err)
	}
	if len(teacherList) != 1 || teacherList[0].CourseCode != "CS101" {
		t.Errorf("teacher list = %+v, want only CS101", teacherList)
	}

	studentList, err := svc.ListCourses(ctx, student.ID)
	if err != nil {
		t.Fatalf("student list failed: %v", err)
	}
	if len(studentList) != 1 || studentList[0].CourseCode != "CS102" {
		t.Errorf("student list = %+v, want only CS102", studentList)
	}
}
