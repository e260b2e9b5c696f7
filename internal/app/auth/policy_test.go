package auth

import (
	"testing"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
)

func user(id int64, role models.RoleType) *models.User {
	return &models.User{ID: id, Role: role, IsActive: true}
}

func int64Ptr(v int64) *int64 { return &v }

func TestDecideAdminOnlyActions(t *testing.T) {
	adminOnly := []Action{
		ActionCreateCourse,
		ActionCreateClass,
		ActionUpdateClass,
		ActionDeleteClass,
		ActionCreateUser,
		ActionDeleteUser,
		ActionListUsers,
	}

	admin := user(1, models.RoleAdmin)
	teacher := user(2, models.RoleTeacher)
	student := user(3, models.RoleStudent)

	for _, action := range adminOnly {
		if !Decide(admin, action, Target{}) {
			t.Errorf("admin should be allowed %s", action)
		}
		if Decide(teacher, action, Target{}) {
			t.Errorf("teacher should be denied %s", action)
		}
		if Decide(student, action, Target{}) {
			t.Errorf("student should be denied %s", action)
		}
	}
}

func TestDecideCourseOwnership(t *testing.T) {
	owner := user(10, models.RoleTeacher)
	other := user(11, models.RoleTeacher)
	student := user(12, models.RoleStudent)
	admin := user(13, models.RoleAdmin)

	owned := Target{CourseTeacherID: int64Ptr(10)}
	unassigned := Target{CourseTeacherID: nil}

	for _, action := range []Action{ActionUpdateCourse, ActionDeleteCourse} {
		if !Decide(admin, action, owned) {
			t.Errorf("admin should be allowed %s on any course", action)
		}
		if !Decide(owner, action, owned) {
			t.Errorf("owning teacher should be allowed %s", action)
		}
		if Decide(other, action, owned) {
			t.Errorf("non-owning teacher should be denied %s", action)
		}
		if Decide(owner, action, unassigned) {
			t.Errorf("teacher should be denied %s on an unassigned course", action)
		}
		if Decide(student, action, owned) {
			t.Errorf("student should be denied %s", action)
		}
	}
}

func TestDecideUserVisibility(t *testing.T) {
	admin := user(1, models.RoleAdmin)
	student := user(5, models.RoleStudent)

	if !Decide(admin, ActionViewUser, Target{UserID: 5}) {
		t.Error("admin should view any user")
	}
	if !Decide(student, ActionViewUser, Target{UserID: 5}) {
		t.Error("user should view themselves")
	}
	if Decide(student, ActionViewUser, Target{UserID: 6}) {
		t.Error("user should not view another user")
	}

	if !Decide(admin, ActionUpdateUser, Target{UserID: 5}) {
		t.Error("admin should update any user")
	}
	if !Decide(student, ActionUpdateUser, Target{UserID: 5}) {
		t.Error("user should update themselves")
	}
	if Decide(student, ActionUpdateUser, Target{UserID: 6}) {
		t.Error("user should not update another user")
	}
}

func TestDecideEnrollSelfOnly(t *testing.T) {
	student := user(20, models.RoleStudent)
	teacher := user(21, models.RoleTeacher)
	admin := user(22, models.RoleAdmin)

	if !Decide(student, ActionEnroll, Target{UserID: 20}) {
		t.Error("student should enroll themselves")
	}
	if Decide(student, ActionEnroll, Target{UserID: 21}) {
		t.Error("student should not enroll someone else")
	}
	if Decide(teacher, ActionEnroll, Target{UserID: 21}) {
		t.Error("teacher should not enroll")
	}
	if Decide(admin, ActionEnroll, Target{UserID: 22}) {
		t.Error("admin should not enroll")
	}
}

func TestDecideDeniesUnknownInput(t *testing.T) {
	if Decide(nil, ActionCreateCourse, Target{}) {
		t.Error("nil actor must be denied")
	}
	if Decide(user(1, models.RoleType("superuser")), ActionCreateCourse, Target{}) {
		t.Error("unknown role must be denied")
	}
	if Decide(user(1, models.RoleAdmin), Action("course.publish"), Target{}) {
		t.Error("unknown action must be denied")
	}
}

func TestListScopeFor(t *testing.T) {
	if got := ListScopeFor(models.RoleAdmin); got != ScopeAll {
		t.Errorf("admin scope = %v, want ScopeAll", got)
	}
	if got := ListScopeFor(models.RoleTeacher); got != ScopeTaught {
		t.Errorf("teacher scope = %v, want ScopeTaught", got)
	}
	if got := ListScopeFor(models.RoleStudent); got != ScopeEnrolled {
		t.Errorf("student scope = %v, want ScopeEnrolled", got)
	}
}
