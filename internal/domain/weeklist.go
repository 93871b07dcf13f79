package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lifecycle windows. These are defaults; the service layer takes the
// effective values from configuration.
const (
	// MaxOpenWeeklists is the per-user cap on weeklists that are
	// simultaneously active and not completed. Enforced at creation only.
	MaxOpenWeeklists = 2

	// DefaultEditWindow is how long after creation the task structure of a
	// weeklist may be changed. Fixed at creation, never extended.
	DefaultEditWindow = 24 * time.Hour

	// DefaultActiveLifetime is the age at which a weeklist stops being
	// active. The transition is one-way.
	DefaultActiveLifetime = 7 * 24 * time.Hour
)

// Weeklist validation errors.
var (
	ErrEmptyWeeklistID      = errors.New("weeklist ID cannot be empty")
	ErrEmptyWeeklistOwner   = errors.New("weeklist owner cannot be empty")
	ErrEmptyWeeklistName    = errors.New("weeklist name cannot be empty")
	ErrEmptyTaskID          = errors.New("task ID cannot be empty")
	ErrEmptyTaskDescription = errors.New("task description cannot be empty")
)

// Task is a sub-entity owned exclusively by its parent weeklist.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewTask creates a Task with a fresh ID and empty completion state.
func NewTask(description string, now time.Time) Task {
	return Task{
		ID:          uuid.New(),
		Description: description,
		IsCompleted: false,
		CreatedAt:   now.UTC(),
	}
}

// Validate checks the task's fields.
func (t Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Description == "" {
		return ErrEmptyTaskDescription
	}
	return nil
}

// Weeklist is a user-owned, time-boxed collection of tasks. CreatedBy and
// CreatedAt are immutable after creation. IsActive transitions true->false
// once (sweep-driven) and never back; IsCompleted is recomputed from the
// tasks after every toggle and is never set directly by clients.
type Weeklist struct {
	ID          uuid.UUID `json:"id"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"isActive"`
	IsCompleted bool      `json:"isCompleted"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Version backs the store's optimistic concurrency check. It is not part
	// of the API surface.
	Version int64 `json:"-"`
}

// NewWeeklist creates a Weeklist for the given owner with one fresh,
// incomplete task per description. Returns an error if validation fails.
func NewWeeklist(ownerID uuid.UUID, name string, taskDescriptions []string, now time.Time) (*Weeklist, error) {
	tasks := make([]Task, 0, len(taskDescriptions))
	for _, desc := range taskDescriptions {
		tasks = append(tasks, NewTask(desc, now))
	}

	w := &Weeklist{
		ID:          uuid.New(),
		CreatedBy:   ownerID,
		Name:        name,
		IsActive:    true,
		IsCompleted: false,
		Tasks:       tasks,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Weeklist has valid data.
func (w *Weeklist) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWeeklistID
	}
	if w.CreatedBy == uuid.Nil {
		return ErrEmptyWeeklistOwner
	}
	if w.Name == "" {
		return ErrEmptyWeeklistName
	}
	for _, t := range w.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsOpen reports whether the weeklist counts against the per-user cap:
// active and not completed.
func (w *Weeklist) IsOpen() bool {
	return w.IsActive && !w.IsCompleted
}

// WithinEditWindow reports whether structural mutations (add/edit/delete
// task, delete weeklist) are still permitted at the given time. The window
// is measured from creation and is never extended by later edits.
func (w *Weeklist) WithinEditWindow(now time.Time, window time.Duration) bool {
	return now.Sub(w.CreatedAt) < window
}

// Expired reports whether the weeklist has outlived the active lifetime.
func (w *Weeklist) Expired(now time.Time, lifetime time.Duration) bool {
	return now.Sub(w.CreatedAt) >= lifetime
}

// TaskIndex returns the position of the task with the given ID, or -1.
func (w *Weeklist) TaskIndex(taskID uuid.UUID) int {
	for i := range w.Tasks {
		if w.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// AllTasksCompleted reports whether every task in the list is complete.
func (w *Weeklist) AllTasksCompleted() bool {
	for i := range w.Tasks {
		if !w.Tasks[i].IsCompleted {
			return false
		}
	}
	return true
}

// RecomputeCompletion re-derives IsCompleted from the tasks. Called after
// every toggle; clients never set the flag directly.
func (w *Weeklist) RecomputeCompletion() {
	w.IsCompleted = w.AllTasksCompleted()
}
