package models

// RoleType defines the user role type. The set is closed: every
// authorization decision switches exhaustively over these three values.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeacher RoleType = "teacher"
	RoleStudent RoleType = "student"
)

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// EnrollmentStatus defines the lifecycle state of an enrollment row.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// ThemePreference is the UI theme stored on the user profile.
type ThemePreference string

const (
	ThemeLight ThemePreference = "light"
	ThemeDark  ThemePreference = "dark"
)
