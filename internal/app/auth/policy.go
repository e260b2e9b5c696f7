package auth

import (
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionCreateCourse Action = "course.create"
	ActionUpdateCourse Action = "course.update"
	ActionDeleteCourse Action = "course.delete"

	ActionCreateClass Action = "class.create"
	ActionUpdateClass Action = "class.update"
	ActionDeleteClass Action = "class.delete"

	ActionCreateUser Action = "user.create"
	ActionUpdateUser Action = "user.update"
	ActionDeleteUser Action = "user.delete"
	ActionListUsers  Action = "user.list"
	ActionViewUser   Action = "user.view"

	ActionEnroll Action = "enrollment.create"
)

// Target carries the attributes of the entity an action applies to. Only the
// fields relevant to the action need to be set.
type Target struct {
	// CourseTeacherID is the owning teacher of a course, nil when unassigned.
	CourseTeacherID *int64
	// UserID is the subject user for user-scoped actions.
	UserID int64
}

// ListScope narrows list results by role rather than denying the request.
type ListScope int

const (
	// ScopeAll returns every row (admin).
	ScopeAll ListScope = iota
	// ScopeTaught returns rows where the actor is the assigned teacher.
	ScopeTaught
	// ScopeEnrolled returns rows reachable through the actor's enrollments.
	ScopeEnrolled
)

// Decide is the pure authorization decision: it maps (actor, action, target)
// to allow or deny and never touches state. Unknown roles and unknown actions
// are denied. Callers run it before every mutating operation; a false result
// must surface as Forbidden, never as a silent no-op.
func Decide(actor *models.User, action Action, target Target) bool {
	if actor == nil || !actor.Role.Valid() {
		return false
	}

	switch action {
	case ActionCreateCourse, ActionCreateClass, ActionUpdateClass, ActionDeleteClass,
		ActionCreateUser, ActionDeleteUser, ActionListUsers:
		return actor.Role == models.RoleAdmin

	case ActionUpdateCourse, ActionDeleteCourse:
		switch actor.Role {
		case models.RoleAdmin:
			return true
		case models.RoleTeacher:
			return target.CourseTeacherID != nil && *target.CourseTeacherID == actor.ID
		case models.RoleStudent:
			return false
		}

	case ActionViewUser:
		return actor.Role == models.RoleAdmin || actor.ID == target.UserID

	case ActionUpdateUser:
		// Self-updates are field-limited by the request layer; admins may
		// update anyone with any field.
		return actor.Role == models.RoleAdmin || actor.ID == target.UserID

	case ActionEnroll:
		// Self-enrollment only. Admins and teachers are not enrollable
		// subjects, and proxy enrollment is not a thing in this design.
		return actor.Role == models.RoleStudent && actor.ID == target.UserID
	}

	return false
}

// ListScopeFor returns how list results are narrowed for a role.
func ListScopeFor(role models.RoleType) ListScope {
	switch role {
	case models.RoleAdmin:
		return ScopeAll
	case models.RoleTeacher:
		return ScopeTaught
	default:
		return ScopeEnrolled
	}
}
