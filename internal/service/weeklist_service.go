package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/config"
	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// WeeklistService is the weeklist lifecycle engine. It enforces the open
// quota at creation, the structural edit window, the toggle transition rules
// and the completion recomputation, and drives the expiry sweep.
type WeeklistService interface {
	// Create builds a weeklist named "Weeklist #N" (N from the owner's
	// all-time creation counter) with one incomplete task per description.
	// Returns ErrQuotaExceeded if the owner already has the maximum number
	// of open weeklists.
	Create(ctx context.Context, ownerID uuid.UUID, taskDescriptions []string) (*domain.Weeklist, error)

	// List returns all the owner's weeklists, in any state.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Weeklist, error)

	// Get returns the weeklist iff it exists and is owned by ownerID.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error)

	// Delete permanently removes the weeklist and its tasks. Returns
	// store.ErrWeeklistNotFound or ErrWindowExpired. The removed weeklist
	// is returned so callers can reference it by name.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error)

	// AddTask appends a fresh incomplete task. The open quota does not
	// apply at task level; any number of tasks may be added within the
	// edit window.
	AddTask(ctx context.Context, ownerID, id uuid.UUID, description string) (*domain.Weeklist, error)

	// DeleteTask removes the task with the given ID.
	DeleteTask(ctx context.Context, ownerID, id, taskID uuid.UUID) (*domain.Weeklist, error)

	// EditTask overwrites the task's description in place; its completion
	// state is untouched.
	EditTask(ctx context.Context, ownerID, id, taskID uuid.UUID, description string) (*domain.Weeklist, error)

	// ToggleTask flips the task's completion flag and recomputes the parent
	// list's completion. No edit-window check applies. Returns
	// ErrWeeklistInactive, ErrWeeklistCompleted or ErrTaskNotFound when the
	// transition rules block the toggle.
	ToggleTask(ctx context.Context, ownerID, id, taskID uuid.UUID) (*domain.Weeklist, error)

	// Feed returns every open weeklist across all owners. An empty slice is
	// a valid outcome, distinct from an error.
	Feed(ctx context.Context) ([]*domain.Weeklist, error)

	// SweepExpired deactivates every active weeklist older than the
	// configured lifetime. Idempotent; the transition is one-way.
	SweepExpired(ctx context.Context) (int64, error)
}

// WeeklistServiceImpl implements the WeeklistService interface.
type WeeklistServiceImpl struct {
	weeklists store.WeeklistStore
	users     store.UserStore
	tx        store.Transactor
	logger    *slog.Logger

	now            func() time.Time
	editWindow     time.Duration
	activeLifetime time.Duration
}

var _ WeeklistService = (*WeeklistServiceImpl)(nil)

// Option customizes a WeeklistServiceImpl.
type Option func(*WeeklistServiceImpl)

// WithClock injects the time source. Used by tests to pin the edit-window
// and expiry boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *WeeklistServiceImpl) {
		s.now = now
	}
}

// NewWeeklistService creates a new WeeklistService. The lifecycle windows
// come from the sweep configuration.
func NewWeeklistService(
	weeklists store.WeeklistStore,
	users store.UserStore,
	tx store.Transactor,
	cfg config.SweepConfig,
	log *slog.Logger,
	opts ...Option,
) *WeeklistServiceImpl {
	if log == nil {
		log = slog.Default()
	}

	s := &WeeklistServiceImpl{
		weeklists:      weeklists,
		users:          users,
		tx:             tx,
		logger:         log.With("component", "weeklist_service"),
		now:            time.Now,
		editWindow:     time.Duration(cfg.EditWindowHours) * time.Hour,
		activeLifetime: time.Duration(cfg.WeeklistTTLHours) * time.Hour,
	}
	if s.editWindow <= 0 {
		s.editWindow = domain.DefaultEditWindow
	}
	if s.activeLifetime <= 0 {
		s.activeLifetime = domain.DefaultActiveLifetime
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements WeeklistService.Create. The quota check, the counter
// bump and the insert run in one transaction so two concurrent creations
// cannot both slip under the cap.
func (s *WeeklistServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, taskDescriptions []string) (*domain.Weeklist, error) {
	var created *domain.Weeklist

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		weeklists := s.weeklists.WithTx(tx)
		users := s.users.WithTx(tx)

		open, err := weeklists.CountOpenByOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to count open weeklists: %w", err)
		}
		if open >= domain.MaxOpenWeeklists {
			return ErrQuotaExceeded
		}

		seq, err := users.IncrementWeeklistCount(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to increment weeklist counter: %w", err)
		}

		w, err := domain.NewWeeklist(ownerID, fmt.Sprintf("Weeklist #%d", seq), taskDescriptions, s.now())
		if err != nil {
			return err
		}

		if err := weeklists.Create(ctx, w); err != nil {
			return err
		}

		created = w
		return nil
	})

	if err != nil {
		s.logger.Debug("weeklist creation failed",
			"error", err,
			"owner_id", ownerID)
		return nil, err
	}

	s.logger.Info("weeklist created",
		"weeklist_id", created.ID,
		"owner_id", ownerID,
		"name", created.Name,
		"tasks", len(created.Tasks))
	return created, nil
}

// List implements WeeklistService.List.
func (s *WeeklistServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Weeklist, error) {
	return s.weeklists.ListByOwner(ctx, ownerID)
}

// Get implements WeeklistService.Get.
func (s *WeeklistServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error) {
	return s.weeklists.GetForOwner(ctx, ownerID, id)
}

// Delete implements WeeklistService.Delete.
func (s *WeeklistServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error) {
	w, err := s.getEditable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.weeklists.Delete(ctx, w.ID); err != nil {
		return nil, err
	}

	s.logger.Info("weeklist deleted",
		"weeklist_id", w.ID,
		"owner_id", ownerID,
		"name", w.Name)
	return w, nil
}

// AddTask implements WeeklistService.AddTask.
func (s *WeeklistServiceImpl) AddTask(ctx context.Context, ownerID, id uuid.UUID, description string) (*domain.Weeklist, error) {
	w, err := s.getEditable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(description, s.now())
	if err := task.Validate(); err != nil {
		return nil, err
	}
	w.Tasks = append(w.Tasks, task)

	if err := s.persist(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteTask implements WeeklistService.DeleteTask. Removing a task does not
// recompute the parent's completion; only toggles do.
func (s *WeeklistServiceImpl) DeleteTask(ctx context.Context, ownerID, id, taskID uuid.UUID) (*domain.Weeklist, error) {
	w, err := s.getEditable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	idx := w.TaskIndex(taskID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	w.Tasks = append(w.Tasks[:idx], w.Tasks[idx+1:]...)

	if err := s.persist(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// EditTask implements WeeklistService.EditTask.
func (s *WeeklistServiceImpl) EditTask(ctx context.Context, ownerID, id, taskID uuid.UUID, description string) (*domain.Weeklist, error) {
	w, err := s.getEditable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	idx := w.TaskIndex(taskID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	w.Tasks[idx].Description = description
	if err := w.Tasks[idx].Validate(); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// ToggleTask implements WeeklistService.ToggleTask.
func (s *WeeklistServiceImpl) ToggleTask(ctx context.Context, ownerID, id, taskID uuid.UUID) (*domain.Weeklist, error) {
	w, err := s.weeklists.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if !w.IsActive {
		return nil, ErrWeeklistInactive
	}
	if w.IsCompleted {
		// A completed list cannot be reopened by toggling a task back.
		return nil, ErrWeeklistCompleted
	}

	idx := w.TaskIndex(taskID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	w.Tasks[idx].IsCompleted = !w.Tasks[idx].IsCompleted
	w.RecomputeCompletion()

	if err := s.persist(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Debug("task toggled",
		"weeklist_id", w.ID,
		"task_id", taskID,
		"task_completed", w.Tasks[idx].IsCompleted,
		"list_completed", w.IsCompleted)
	return w, nil
}

// Feed implements WeeklistService.Feed.
func (s *WeeklistServiceImpl) Feed(ctx context.Context) ([]*domain.Weeklist, error) {
	return s.weeklists.ListOpen(ctx)
}

// SweepExpired implements WeeklistService.SweepExpired.
func (s *WeeklistServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.activeLifetime)
	count, err := s.weeklists.DeactivateOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
		return 0, err
	}
	if count > 0 {
		s.logger.Info("expiry sweep deactivated weeklists", "count", count)
	}
	return count, nil
}

// getEditable fetches an owned weeklist and checks the structural edit
// window against the current time.
func (s *WeeklistServiceImpl) getEditable(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error) {
	w, err := s.weeklists.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !w.WithinEditWindow(s.now(), s.editWindow) {
		return nil, ErrWindowExpired
	}
	return w, nil
}

func (s *WeeklistServiceImpl) persist(ctx context.Context, w *domain.Weeklist) error {
	w.UpdatedAt = s.now().UTC()
	if err := s.weeklists.Update(ctx, w); err != nil {
		s.logger.Error("failed to persist weeklist",
			"error", err,
			"weeklist_id", w.ID)
		return err
	}
	return nil
}
