package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/platform/logger"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// WeeklistStore implements the store.WeeklistStore interface using
// PostgreSQL. Tasks are embedded in their parent row as a JSONB column, so a
// weeklist reads and writes as a single document the way the rest of the
// system thinks about it.
type WeeklistStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure WeeklistStore implements store.WeeklistStore.
var _ store.WeeklistStore = (*WeeklistStore)(nil)

// NewWeeklistStore creates a PostgreSQL implementation of
// store.WeeklistStore. It accepts a database connection or transaction
// managed by the caller.
func NewWeeklistStore(db store.DBTX, log *slog.Logger) *WeeklistStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WeeklistStore{
		db:     db,
		logger: log.With(slog.String("component", "weeklist_store")),
	}
}

// WithTx implements store.WeeklistStore.WithTx.
func (s *WeeklistStore) WithTx(tx *sql.Tx) store.WeeklistStore {
	if tx == nil {
		return s
	}
	return &WeeklistStore{db: tx, logger: s.logger}
}

const weeklistColumns = "id, created_by, name, is_active, is_completed, tasks, version, created_at, updated_at"

// Create implements store.WeeklistStore.Create.
func (s *WeeklistStore) Create(ctx context.Context, weeklist *domain.Weeklist) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := weeklist.Validate(); err != nil {
		log.Warn("weeklist validation failed during create",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", weeklist.ID.String()))
		return err
	}

	tasks, err := json.Marshal(weeklist.Tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	query := `
		INSERT INTO weeklists (id, created_by, name, is_active, is_completed, tasks, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		weeklist.ID,
		weeklist.CreatedBy,
		weeklist.Name,
		weeklist.IsActive,
		weeklist.IsCompleted,
		tasks,
		weeklist.Version,
		weeklist.CreatedAt,
		weeklist.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during weeklist creation",
				slog.String("weeklist_id", weeklist.ID.String()),
				slog.String("owner_id", weeklist.CreatedBy.String()))
			return fmt.Errorf("%w: owner %s not found",
				store.ErrInvalidEntity, weeklist.CreatedBy)
		}
		log.Error("failed to create weeklist",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", weeklist.ID.String()))
		return err
	}

	log.Info("weeklist created",
		slog.String("weeklist_id", weeklist.ID.String()),
		slog.String("owner_id", weeklist.CreatedBy.String()),
		slog.String("name", weeklist.Name))
	return nil
}

// GetForOwner implements store.WeeklistStore.GetForOwner.
func (s *WeeklistStore) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error) {
	query := `
		SELECT ` + weeklistColumns + `
		FROM weeklists
		WHERE id = $1 AND created_by = $2
	`
	row := s.db.QueryRowContext(ctx, query, id, ownerID)
	return s.scanWeeklist(ctx, row)
}

// ListByOwner implements store.WeeklistStore.ListByOwner.
func (s *WeeklistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Weeklist, error) {
	query := `
		SELECT ` + weeklistColumns + `
		FROM weeklists
		WHERE created_by = $1
		ORDER BY created_at ASC
	`
	return s.queryWeeklists(ctx, query, ownerID)
}

// CountOpenByOwner implements store.WeeklistStore.CountOpenByOwner.
func (s *WeeklistStore) CountOpenByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM weeklists
		WHERE created_by = $1 AND is_active AND NOT is_completed
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		log.Error("failed to count open weeklists",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return 0, err
	}
	return count, nil
}

// ListOpen implements store.WeeklistStore.ListOpen.
func (s *WeeklistStore) ListOpen(ctx context.Context) ([]*domain.Weeklist, error) {
	query := `
		SELECT ` + weeklistColumns + `
		FROM weeklists
		WHERE is_active AND NOT is_completed
		ORDER BY created_at DESC
	`
	return s.queryWeeklists(ctx, query)
}

// Update implements store.WeeklistStore.Update. The WHERE clause carries the
// version the caller read, so a concurrent writer surfaces as
// ErrUpdateConflict instead of a silent lost update.
func (s *WeeklistStore) Update(ctx context.Context, weeklist *domain.Weeklist) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := weeklist.Validate(); err != nil {
		log.Warn("weeklist validation failed during update",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", weeklist.ID.String()))
		return err
	}

	tasks, err := json.Marshal(weeklist.Tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	query := `
		UPDATE weeklists
		SET is_active = $1, is_completed = $2, tasks = $3, version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		weeklist.IsActive,
		weeklist.IsCompleted,
		tasks,
		weeklist.UpdatedAt,
		weeklist.ID,
		weeklist.Version,
	)
	if err != nil {
		log.Error("failed to update weeklist",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", weeklist.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", weeklist.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		// Either the row is gone or the version moved under us.
		exists, err := s.exists(ctx, weeklist.ID)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrWeeklistNotFound
		}
		log.Debug("weeklist version conflict",
			slog.String("weeklist_id", weeklist.ID.String()),
			slog.Int64("version", weeklist.Version))
		return store.ErrUpdateConflict
	}

	weeklist.Version++
	return nil
}

// Delete implements store.WeeklistStore.Delete.
func (s *WeeklistStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM weeklists WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete weeklist",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrWeeklistNotFound
	}

	log.Info("weeklist deleted", slog.String("weeklist_id", id.String()))
	return nil
}

// DeactivateOlderThan implements store.WeeklistStore.DeactivateOlderThan.
func (s *WeeklistStore) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE weeklists
		SET is_active = FALSE, version = version + 1, updated_at = $1
		WHERE is_active AND created_at <= $2
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), cutoff)
	if err != nil {
		log.Error("failed to deactivate expired weeklists",
			slog.String("error", err.Error()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if rowsAffected > 0 {
		log.Info("deactivated expired weeklists",
			slog.Int64("count", rowsAffected))
	}
	return rowsAffected, nil
}

func (s *WeeklistStore) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM weeklists WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *WeeklistStore) scanWeeklist(ctx context.Context, row rowScanner) (*domain.Weeklist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w domain.Weeklist
	var tasks []byte

	err := row.Scan(
		&w.ID,
		&w.CreatedBy,
		&w.Name,
		&w.IsActive,
		&w.IsCompleted,
		&tasks,
		&w.Version,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWeeklistNotFound
		}
		log.Error("failed to scan weeklist row",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := json.Unmarshal(tasks, &w.Tasks); err != nil {
		log.Error("failed to unmarshal weeklist tasks",
			slog.String("error", err.Error()),
			slog.String("weeklist_id", w.ID.String()))
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}
	if w.Tasks == nil {
		w.Tasks = []domain.Task{}
	}

	return &w, nil
}

func (s *WeeklistStore) queryWeeklists(ctx context.Context, query string, args ...any) ([]*domain.Weeklist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query weeklists",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	weeklists := []*domain.Weeklist{}
	for rows.Next() {
		w, err := s.scanWeeklist(ctx, rows)
		if err != nil {
			return nil, err
		}
		weeklists = append(weeklists, w)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning weeklist rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return weeklists, nil
}
