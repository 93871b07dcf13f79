package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/platform/logger"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// UserStore implements the store.UserStore interface using PostgreSQL.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
// It accepts a database connection or transaction managed by the caller.
func NewUserStore(db store.DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s
	}
	return &UserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, fullname, email, hashed_password, age, gender, mobile, weeklists_created, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Fullname,
		user.Email,
		user.HashedPassword,
		user.Age,
		user.Gender,
		user.Mobile,
		user.WeeklistsCreated,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate identity during user creation",
				slog.String("user_id", user.ID.String()))
			return mapUniqueViolation(err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getBy(ctx, "id = $1", id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email = $1", email)
}

func (s *UserStore) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, fullname, email, hashed_password, age, gender, mobile, weeklists_created, created_at
		FROM users
		WHERE ` + where

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.HashedPassword,
		&user.Age,
		&user.Gender,
		&user.Mobile,
		&user.WeeklistsCreated,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &user, nil
}

// IncrementWeeklistCount implements store.UserStore.IncrementWeeklistCount.
// The bump is a single atomic statement, so the all-time counter stays
// monotone even without a surrounding transaction.
func (s *UserStore) IncrementWeeklistCount(ctx context.Context, id uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET weeklists_created = weeklists_created + 1
		WHERE id = $1
		RETURNING weeklists_created
	`

	var count int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		log.Error("failed to increment weeklist count",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, err
	}

	return count, nil
}
