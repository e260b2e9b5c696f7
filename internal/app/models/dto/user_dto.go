package dto

// CreateUserRequest represents an admin request to create a user
type CreateUserRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	FirstName       string `json:"firstName" binding:"required,min=1,max=50"`
	LastName        string `json:"lastName" binding:"required,min=1,max=50"`
	Role            string `json:"role" binding:"omitempty,oneof=admin teacher student"`
	ThemePreference string `json:"themePreference" binding:"omitempty,oneof=light dark"`
	ProfileImage    string `json:"profileImage" binding:"omitempty,max=255"`
}

// UpdateUserRequest represents an admin update of any user field.
// All fields are optional; absent fields are left untouched.
type UpdateUserRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=6"`
	FirstName       *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName        *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	Role            *string `json:"role" binding:"omitempty,oneof=admin teacher student"`
	ThemePreference *string `json:"themePreference" binding:"omitempty,oneof=light dark"`
	ProfileImage    *string `json:"profileImage" binding:"omitempty,max=255"`
}

// UpdateProfileRequest is the self-service profile update. Role is
// deliberately absent: users cannot change their own role.
type UpdateProfileRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=6"`
	FirstName       *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName        *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	ThemePreference *string `json:"themePreference" binding:"omitempty,oneof=light dark"`
	ProfileImage    *string `json:"profileImage" binding:"omitempty,max=255"`
}

// UserListQuery represents pagination parameters for the user list
type UserListQuery struct {
	Page    int `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage int `form:"perPage,default=20" binding:"omitempty,min=1,max=100"`
}
