package store

import (
	"context"
	"errors"

	"github.com/telemost/accountd/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Traffic() Traffic

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., the
	// duplicate-email pre-check followed by the write).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail does an exact, case-sensitive lookup by login email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email or phone number surfaces as ErrAlreadyExists,
	// whether it hits the pre-check or the UNIQUE index.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateEmail mutates the login email and bumps updated_at.
	UpdateEmail(ctx context.Context, userID string, newEmail string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdatePlanID overwrites plan_id and bumps updated_at.
	UpdatePlanID(ctx context.Context, userID string, planID *int64) error
}

type Traffic interface {
	// SampleRandom returns up to limit uniformly sampled traffic rows.
	SampleRandom(ctx context.Context, limit int) ([]domain.MobileTraffic, error)

	// InsertTraffic adds a row; used by data loaders and tests.
	InsertTraffic(ctx context.Context, row domain.MobileTraffic) error
}
