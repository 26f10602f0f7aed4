package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lfarias/sisacad/internal/config"
	"github.com/lfarias/sisacad/internal/pkg/logger"
)

// Postgres wraps the connection pool and the session-scoping helpers.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL connection pool
func NewPostgres(cfg *config.Config) (*Postgres, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connString := cfg.GetPostgresConnectionString()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// Close closes the pool
func (db *Postgres) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Identity is the caller identity the row-level policies evaluate. It is
// materialized into the database session for every statement; the HTTP
// layer's own role checks are only a rendering hint.
type Identity struct {
	UserID int64
}

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the caller identity from the context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Querier is the statement interface repositories run against. Both
// pgx.Tx and the pool satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionFn is a function executed within a policy-scoped transaction.
type SessionFn func(ctx context.Context, q Querier) error

// AsCaller runs fn in a transaction whose session carries the identity
// found in ctx. Every statement inside is evaluated by the row-level
// policies as that user; with no identity the policies see an anonymous
// session and deny accordingly.
func (db *Postgres) AsCaller(ctx context.Context, fn SessionFn) error {
	userID := ""
	if id, ok := IdentityFrom(ctx); ok && id.UserID > 0 {
		userID = strconv.FormatInt(id.UserID, 10)
	}
	return db.inScopedTx(ctx, "app.user_id", userID, fn)
}

// AsSystem runs fn in the elevated session scope reserved for the auth
// subsystem (registration, credential lookups, token storage, seeding).
func (db *Postgres) AsSystem(ctx context.Context, fn SessionFn) error {
	return db.inScopedTx(ctx, "app.system", "on", fn)
}

// inScopedTx begins a transaction, installs a transaction-local session
// setting and runs fn. set_config(..., true) resets at commit/rollback, so
// the scope never leaks across pooled connections.
func (db *Postgres) inScopedTx(ctx context.Context, setting, value string, fn SessionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if _, err := tx.Exec(ctx, "SELECT set_config($1, $2, true)", setting, value); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to scope session: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
