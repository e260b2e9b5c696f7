package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64           `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email           string          `json:"email" db:"email" example:"user@example.com"`              // User's email address (stored lowercase)
	Password        string          `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName       string          `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName        string          `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	Role            RoleType        `json:"role" db:"role" example:"student"`                         // User's role (admin, teacher or student)
	ThemePreference ThemePreference `json:"themePreference" db:"theme_preference" example:"light"`    // UI theme preference
	ProfileImage    *string         `json:"profileImage,omitempty" db:"profile_image"`                // URL of the user's profile image (nullable)
	IsActive        bool            `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt       time.Time       `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
