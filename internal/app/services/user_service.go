package services

import (
	"context"
	"fmt"
	"strings"

	authz "github.com/YousefBawaliz/student-portal-2-backend/internal/app/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models/dto"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/helpers"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// UserAdminStore is the user persistence surface the user service needs.
type UserAdminStore interface {
	Create(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// UserService handles user management and profile operations
type UserService struct {
	users UserAdminStore
	authz *authz.AuthorizationService
}

// NewUserService creates a new UserService
func NewUserService(users UserAdminStore, authzService *authz.AuthorizationService) *UserService {
	return &UserService{
		users: users,
		authz: authzService,
	}
}

// CreateUser creates a user on behalf of an admin. The email unique
// constraint, not a prior lookup, decides duplicates.
func (s *UserService) CreateUser(ctx context.Context, actorID int64, req *dto.CreateUserRequest) (*models.User, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionCreateUser, authz.Target{}); err != nil {
		return nil, err
	}

	role := models.RoleType(req.Role)
	if req.Role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid role: %s", req.Role))
	}

	theme := models.ThemePreference(req.ThemePreference)
	if req.ThemePreference == "" {
		theme = models.ThemeLight
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        hashedPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Role:            role,
		ThemePreference: theme,
		IsActive:        true,
	}
	if req.ProfileImage != "" {
		user.ProfileImage = &req.ProfileImage
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// GetUser returns a user visible to the actor (admins see anyone, others
// only themselves).
func (s *UserService) GetUser(ctx context.Context, actorID, userID int64) (*models.User, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionViewUser, authz.Target{UserID: userID}); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}

// ListUsers returns a page of all users (admin only)
func (s *UserService) ListUsers(ctx context.Context, actorID int64, page, perPage int) ([]*models.User, dto.PaginationInfo, error) {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionListUsers, authz.Target{}); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, perPage)

	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, limit), nil
}

// UpdateUser applies a partial update to a user. Admins may update anyone
// and any field; other actors only themselves, and never their role.
func (s *UserService) UpdateUser(ctx context.Context, actorID, userID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	actor, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionUpdateUser, authz.Target{UserID: userID})
	if err != nil {
		return nil, err
	}

	if req.Role != nil && !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyUserUpdate(user, req); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies the self-service subset of user fields. Role is not
// part of the request type, so no role check is needed here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	full := &dto.UpdateUserRequest{
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ThemePreference: req.ThemePreference,
		ProfileImage:    req.ProfileImage,
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyUserUpdate(user, full); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user (admin only). Users referenced by courses,
// classes or enrollments cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if _, err := s.authz.AuthorizeActor(ctx, actorID, authz.ActionDeleteUser, authz.Target{UserID: userID}); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info().Int64("userID", userID).Int64("actorID", actorID).Msg("User deleted")
	return nil
}

func (s *UserService) applyUserUpdate(user *models.User, req *dto.UpdateUserRequest) error {
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		role := models.RoleType(*req.Role)
		if !role.Valid() {
			return apperrors.NewBadRequestError(fmt.Sprintf("invalid role: %s", *req.Role))
		}
		user.Role = role
	}
	if req.ThemePreference != nil {
		user.ThemePreference = models.ThemePreference(*req.ThemePreference)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = req.ProfileImage
	}
	return nil
}
