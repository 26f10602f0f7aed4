package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
)

// IProfileRepository defines profile reads and updates. All methods run
// in caller scope; the policies decide whether the row is visible.
type IProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Profile, int64, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
}

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db *db.Postgres
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(database *db.Postgres) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetByID retrieves a profile with its role assignments. A row the
// policies hide scans as no rows, so callers cannot probe other users.
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			SELECT id, full_name, email, created_at, updated_at
			FROM profiles
			WHERE id = $1
		`
		if err := q.QueryRow(ctx, query, id).Scan(
			&profile.ID,
			&profile.FullName,
			&profile.Email,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return err
		}

		rows, err := q.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var role models.Role
			if err := rows.Scan(&role); err != nil {
				return err
			}
			profile.Roles = append(profile.Roles, role)
		}
		return rows.Err()
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return &profile, nil
}

// GetAll lists profiles in creation order. The select policy restricts
// non-admins to their own row, so the same query serves both roles.
func (r *ProfileRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Profile, int64, error) {
	var profiles []*models.Profile
	var total int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
			return err
		}

		query := `
			SELECT p.id, p.full_name, p.email, p.created_at, p.updated_at
			FROM profiles p
			ORDER BY p.created_at, p.id
			OFFSET $1 LIMIT $2
		`
		rows, err := q.Query(ctx, query, offset, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		byID := make(map[int64]*models.Profile)
		for rows.Next() {
			var p models.Profile
			if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return err
			}
			profiles = append(profiles, &p)
			byID[p.ID] = &p
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(profiles) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(profiles))
		for _, p := range profiles {
			ids = append(ids, p.ID)
		}
		roleRows, err := q.Query(ctx,
			`SELECT user_id, role FROM user_roles WHERE user_id = ANY($1) ORDER BY role`, ids)
		if err != nil {
			return err
		}
		defer roleRows.Close()

		for roleRows.Next() {
			var userID int64
			var role models.Role
			if err := roleRows.Scan(&userID, &role); err != nil {
				return err
			}
			if p, ok := byID[userID]; ok {
				p.Roles = append(p.Roles, role)
			}
		}
		return roleRows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("error listing profiles: %w", err)
	}
	return profiles, total, nil
}

// UpdateFullName renames the caller's own profile. The update policy
// limits the statement to the caller's row: updating anyone else affects
// zero rows and reports not found.
func (r *ProfileRepository) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	var affected int64
	err := r.db.AsCaller(ctx, func(ctx context.Context, q db.Querier) error {
		cmdTag, execErr := q.Exec(ctx,
			`UPDATE profiles SET full_name = $1 WHERE id = $2`, fullName, id)
		if execErr != nil {
			return execErr
		}
		affected = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
