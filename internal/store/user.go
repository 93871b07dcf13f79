package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's plaintext Password
	// must already be hashed into HashedPassword by the caller.
	// Returns ErrEmailExists or ErrMobileExists if either identity field is
	// already taken, and validation errors from the domain User otherwise.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// IncrementWeeklistCount atomically bumps the user's all-time weeklist
	// creation counter and returns the new value. The counter drives
	// "Weeklist #N" naming and is monotone even across deletions.
	// Returns ErrUserNotFound if the user does not exist.
	IncrementWeeklistCount(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a UserStore that runs against the provided transaction.
	// The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
