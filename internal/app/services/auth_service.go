package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// UserStore is the slice of user persistence the auth service needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUserID(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles login, token refresh and logout
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.GetTokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error loading token user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrTokenRevoked
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke rotated refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokens.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
		User:             dto.FromUser(user),
	}, nil
}
