package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// ActorStore loads users for authorization decisions.
type ActorStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthorizationService resolves actors and evaluates the pure policy against
// them. It owns no rules of its own; every decision goes through Decide.
type AuthorizationService struct {
	users ActorStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users ActorStore) *AuthorizationService {
	return &AuthorizationService{users: users}
}

// GetActor loads the acting user by ID.
func (s *AuthorizationService) GetActor(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error loading actor")
		return nil, fmt.Errorf("failed to load actor: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Authorize evaluates the policy for an already-loaded actor and returns
// ErrPermissionDenied on a deny. It never mutates state.
func (s *AuthorizationService) Authorize(actor *models.User, action Action, target Target) error {
	if !Decide(actor, action, target) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// AuthorizeActor loads the actor by ID and evaluates the policy in one step.
func (s *AuthorizationService) AuthorizeActor(ctx context.Context, actorID int64, action Action, target Target) (*models.User, error) {
	actor, err := s.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(actor, action, target); err != nil {
		return nil, err
	}
	return actor, nil
}
