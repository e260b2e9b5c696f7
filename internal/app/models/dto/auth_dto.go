package dto

import "github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// RefreshTokenRequest carries a refresh token for rotation or revocation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	TokenType        string        `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64         `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int64         `json:"refreshExpiresIn" example:"2592000"`
	User             *UserResponse `json:"user,omitempty"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID              int64  `json:"id" example:"1"`
	Email           string `json:"email" example:"user@example.com"`
	FirstName       string `json:"firstName" example:"John"`
	LastName        string `json:"lastName" example:"Doe"`
	Role            string `json:"role" example:"student" enums:"admin,teacher,student"`
	ThemePreference string `json:"themePreference" example:"light" enums:"light,dark"`
	ProfileImage    string `json:"profileImage,omitempty"`
	IsActive        bool   `json:"isActive" example:"true"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	resp := &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            string(user.Role),
		ThemePreference: string(user.ThemePreference),
		IsActive:        user.IsActive,
	}
	if user.ProfileImage != nil {
		resp.ProfileImage = *user.ProfileImage
	}
	return resp
}
