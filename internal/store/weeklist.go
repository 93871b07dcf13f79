package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/domain"
)

// WeeklistStore defines the interface for weeklist persistence. Weeklists are
// stored as documents: the task sequence travels with its parent record.
type WeeklistStore interface {
	// Create saves a new weeklist, tasks included.
	// Returns validation errors from the domain Weeklist if data is invalid.
	Create(ctx context.Context, weeklist *domain.Weeklist) error

	// GetForOwner retrieves a weeklist by ID iff it is owned by ownerID.
	// Returns ErrWeeklistNotFound otherwise; callers cannot distinguish
	// another owner's weeklist from a missing one.
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error)

	// ListByOwner returns all weeklists owned by ownerID, in any state,
	// ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Weeklist, error)

	// CountOpenByOwner returns the number of weeklists owned by ownerID that
	// are active and not completed.
	CountOpenByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// ListOpen returns every weeklist across all owners that is active and
	// not completed. An empty slice is a valid result.
	ListOpen(ctx context.Context) ([]*domain.Weeklist, error)

	// Update persists the weeklist's mutable state (flags and tasks) using an
	// optimistic version check. Returns ErrWeeklistNotFound if the row is
	// gone, ErrUpdateConflict if another writer won the race. On success the
	// weeklist's Version is bumped in place.
	Update(ctx context.Context, weeklist *domain.Weeklist) error

	// Delete permanently removes the weeklist and its tasks.
	// Returns ErrWeeklistNotFound if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeactivateOlderThan sets is_active = false on every active weeklist
	// created at or before the cutoff. Returns the number of rows changed.
	// The transition is one-way, so the operation is idempotent.
	DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a WeeklistStore that runs against the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WeeklistStore
}
