package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lfarias/sisacad/internal/app/models"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/apperrors"
	"github.com/lfarias/sisacad/internal/pkg/dberrors"
	"github.com/lfarias/sisacad/internal/pkg/logger"
)

// IUserRepository defines the auth-subject operations. All of them run in
// the elevated system scope: the users table is invisible to caller
// sessions by policy.
type IUserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserRepository handles auth subject persistence
type UserRepository struct {
	db *db.Postgres
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.Postgres) *UserRepository {
	return &UserRepository{db: database}
}

// CreateUser inserts a new auth subject. The provisioning trigger creates
// the matching profile row in the same transaction, so a failed profile
// insert rolls the whole registration back.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash, fullName string) (int64, error) {
	var id int64
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			INSERT INTO users (email, password_hash, full_name_meta)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		return q.QueryRow(ctx, query, email, passwordHash, fullName).Scan(&id)
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email for credential verification
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			SELECT id, email, password_hash, created_at
			FROM users
			WHERE email = $1
		`
		return q.QueryRow(ctx, query, email).Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		query := `
			SELECT id, email, password_hash, created_at
			FROM users
			WHERE id = $1
		`
		return q.QueryRow(ctx, query, id).Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.AsSystem(ctx, func(ctx context.Context, q db.Querier) error {
		query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
		return q.QueryRow(ctx, query, email).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}
