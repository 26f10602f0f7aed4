package services

import (
	"context"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/app/models/dto"
	"github.com/lfarias/sisacad/internal/app/repositories"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// RoleService handles role assignment management
type RoleService struct {
	roleRepo repositories.IRoleRepository
	logger   zerolog.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo repositories.IRoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// GrantRole assigns a role to a user. The insert policy rejects the write
// when the caller is not an admin.
func (s *RoleService) GrantRole(ctx context.Context, req dto.GrantRoleRequest) error {
	role := models.Role(req.Role)
	if !role.IsValid() {
		return apperrors.ErrUnknownRole
	}

	// Early duplicate check for a friendly error; the unique constraint
	// remains the backstop against races.
	has, err := s.roleRepo.HasRole(ctx, req.UserID, role)
	if err != nil {
		return err
	}
	if has {
		return apperrors.ErrRoleAlreadyGranted
	}

	if err := s.roleRepo.Grant(ctx, req.UserID, role); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", req.UserID).Str("role", req.Role).Msg("Role granted")
	return nil
}

// RevokeRole removes a role assignment
func (s *RoleService) RevokeRole(ctx context.Context, userID int64, roleName string) error {
	role := models.Role(roleName)
	if !role.IsValid() {
		return apperrors.ErrUnknownRole
	}

	if err := s.roleRepo.Revoke(ctx, userID, role); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("role", roleName).Msg("Role revoked")
	return nil
}

// ListUserRoles lists the roles assigned to a user
func (s *RoleService) ListUserRoles(ctx context.Context, userID int64) ([]models.Role, error) {
	return s.roleRepo.ListByUser(ctx, userID)
}
