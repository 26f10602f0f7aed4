package seed

import (
	"context"
	"errors"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/config"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// EnsureAdmin creates the default administrator account and grants it the
// admin role. Safe to run on every startup: an existing account is left
// untouched, only the role grant is reconciled.
func EnsureAdmin(ctx context.Context, cfg *config.Config, repos *repositories.Repositories, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	user, err := repos.UserRepository.GetUserByEmail(ctx, cfg.Seed.AdminEmail)
	switch {
	case err == nil:
		// account exists, fall through to the role grant
	case errors.Is(err, apperrors.ErrUserNotFound):
		hash, hashErr := auth.HashPassword(cfg.Seed.AdminPassword)
		if hashErr != nil {
			return hashErr
		}
		userID, createErr := repos.UserRepository.CreateUser(ctx, cfg.Seed.AdminEmail, hash, cfg.Seed.AdminName)
		if createErr != nil {
			return createErr
		}
		lgr.Info().Int64("userID", userID).Str("email", cfg.Seed.AdminEmail).Msg("Seed admin created")
		user, err = repos.UserRepository.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := repos.RoleRepository.GrantSystem(ctx, user.ID, models.RoleAdmin); err != nil {
		if errors.Is(err, apperrors.ErrRoleAlreadyGranted) {
			return nil
		}
		return err
	}

	lgr.Info().Int64("userID", user.ID).Msg("Admin role granted to seed admin")
	return nil
}
