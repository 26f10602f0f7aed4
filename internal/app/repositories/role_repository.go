package repositories

import (
	"context"
	"fmt"

	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/dberrors"
	"github.com/lfarias/sisacad/internal/pkg/logger"
)

// IRoleRepository defines role assignment operations. Grant and Revoke
// run in caller scope and are enforced by the admin-only write policies;
// ListByUserSystem serves the login path, which has no caller session yet.
type IRoleRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Role, error)
	ListByUserSystem(ctx context.Context, userID int64) ([]models.Role, error)
	Grant(ctx context.Context, userID int64, role models.Role) error
	GrantSystem(ctx context.Context, userID int64, role models.Role) error
	Revoke(ctx context.Context, userID int64, role models.Role) error
	HasRole(ctx context.Context, userID int64, role models.Role) (bool, error)
}

// RoleRepository handles role assignment database operations
type RoleRepository struct {
	db *db.Postgres
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(database *db.Postgres) *RoleRepository {
	return &RoleRepository{db: database}
}

func listRoles(ctx context.Context, q db.Querier, userID int64) ([]models.Role, error) {
	rows, err := q.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// ListByUser lists the role assignments visible to the caller
func (r *RoleRepository) ListByUser(ctx context.Context, userID int64) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		var listErr error
		roles, listErr = listRoles(ctx, q, userID)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	return roles, nil
}

// ListByUserSystem lists role assignments in system scope. Login uses it
// to embed role hints in the access token before any caller session exists.
func (r *RoleRepository) ListByUserSystem(ctx context.Context, userID int64) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		var listErr error
		roles, listErr = listRoles(ctx, q, userID)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	return roles, nil
}

// Grant assigns a role to a user as the caller
func (r *RoleRepository) Grant(ctx context.Context, userID int64, role models.Role) error {
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		_, execErr := q.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
		return execErr
	})
	if err != nil {
		return mapGrantError(err, userID, role)
	}
	return nil
}

// GrantSystem assigns a role in system scope, used when seeding the
// default administrator.
func (r *RoleRepository) GrantSystem(ctx context.Context, userID int64, role models.Role) error {
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		_, execErr := q.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
		return execErr
	})
	if err != nil {
		return mapGrantError(err, userID, role)
	}
	return nil
}

func mapGrantError(err error, userID int64, role models.Role) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "user_roles_user_id_role_key"):
		return apperrors.ErrRoleAlreadyGranted
	case dberrors.IsForeignKeyViolation(err, "user_roles_user_id_fkey"):
		return apperrors.ErrUserNotFound
	case dberrors.IsPolicyDenial(err):
		return apperrors.ErrRoleChangeForbidden
	}
	logger.Error().Err(err).Int64("userID", userID).Str("role", string(role)).Msg("Error granting role")
	return fmt.Errorf("error granting role: %w", err)
}

// Revoke removes a role assignment. Zero affected rows means either the
// assignment does not exist or the delete policy hid it; both report the
// same way.
func (r *RoleRepository) Revoke(ctx context.Context, userID int64, role models.Role) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx,
			`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, role)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("error revoking role: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// HasRole reports whether the user holds the role, via the same predicate
// the policies evaluate.
func (r *RoleRepository) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	var has bool
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		return q.QueryRow(ctx, `SELECT has_role($1, $2)`, userID, role).Scan(&has)
	})
	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}
	return has, nil
}
