package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/models"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/app/repositories"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/config"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/apperrors"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/auth"
	"github.com/YousefBawaliz/student-portal-2-backend/internal/pkg/logger"
)

// EnsureAdminUser creates the configured admin account if no user with that
// email exists yet. A concurrent seed from another instance loses the insert
// race and is treated as success.
func EnsureAdminUser(ctx context.Context, cfg *config.Config, users *repositories.UserRepository) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Debug().Msg("Admin seed not configured, skipping")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:           strings.ToLower(cfg.Seed.AdminEmail),
		Password:        hashed,
		FirstName:       "Admin",
		LastName:        "User",
		Role:            models.RoleAdmin,
		ThemePreference: models.ThemeLight,
		IsActive:        true,
	}

	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info().Str("email", admin.Email).Msg("Seeded admin user")
	return nil
}
