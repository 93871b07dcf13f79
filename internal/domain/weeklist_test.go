package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weeklisthq/weeklist-api/internal/domain"
)

func TestNewWeeklist(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("creates active incomplete list with one task per description", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		w, err := domain.NewWeeklist(owner, "Weeklist #1", []string{"water plants", "write report"}, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.Equal(t, owner, w.CreatedBy)
		assert.True(t, w.IsActive)
		assert.False(t, w.IsCompleted)
		require.Len(t, w.Tasks, 2)
		assert.Equal(t, "water plants", w.Tasks[0].Description)
		assert.Equal(t, "write report", w.Tasks[1].Description)
		for _, task := range w.Tasks {
			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.False(t, task.IsCompleted)
		}
	})

	t.Run("rejects empty task description", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewWeeklist(uuid.New(), "Weeklist #1", []string{"ok", ""}, now)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskDescription)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewWeeklist(uuid.Nil, "Weeklist #1", []string{"ok"}, now)
		assert.ErrorIs(t, err, domain.ErrEmptyWeeklistOwner)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewWeeklist(uuid.New(), "", []string{"ok"}, now)
		assert.ErrorIs(t, err, domain.ErrEmptyWeeklistName)
	})
}

func TestWeeklistWithinEditWindow(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	w := &domain.Weeklist{CreatedAt: created}
	window := 24 * time.Hour

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just created", created, true},
		{"one minute before boundary", created.Add(window - time.Minute), true},
		{"exactly at boundary", created.Add(window), false},
		{"one minute after boundary", created.Add(window + time.Minute), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, w.WithinEditWindow(tc.now, window))
		})
	}
}

func TestWeeklistExpired(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	w := &domain.Weeklist{CreatedAt: created}
	lifetime := 7 * 24 * time.Hour

	assert.False(t, w.Expired(created.Add(lifetime-time.Second), lifetime))
	assert.True(t, w.Expired(created.Add(lifetime), lifetime), "boundary counts as expired")
	assert.True(t, w.Expired(created.Add(lifetime+time.Hour), lifetime))
}

func TestWeeklistIsOpen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		active    bool
		completed bool
		want      bool
	}{
		{"active and incomplete", true, false, true},
		{"active but completed", true, true, false},
		{"inactive and incomplete", false, false, false},
		{"inactive and completed", false, true, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := &domain.Weeklist{IsActive: tc.active, IsCompleted: tc.completed}
			assert.Equal(t, tc.want, w.IsOpen())
		})
	}
}

func TestWeeklistTaskIndex(t *testing.T) {
	t.Parallel()

	now := time.Now()
	w, err := domain.NewWeeklist(uuid.New(), "Weeklist #1", []string{"a", "b", "c"}, now)
	require.NoError(t, err)

	assert.Equal(t, 1, w.TaskIndex(w.Tasks[1].ID))
	assert.Equal(t, -1, w.TaskIndex(uuid.New()))
}

func TestWeeklistRecomputeCompletion(t *testing.T) {
	t.Parallel()

	now := time.Now()
	w, err := domain.NewWeeklist(uuid.New(), "Weeklist #1", []string{"a", "b"}, now)
	require.NoError(t, err)

	w.Tasks[0].IsCompleted = true
	w.RecomputeCompletion()
	assert.False(t, w.IsCompleted)

	w.Tasks[1].IsCompleted = true
	w.RecomputeCompletion()
	assert.True(t, w.IsCompleted)

	w.Tasks[0].IsCompleted = false
	w.RecomputeCompletion()
	assert.False(t, w.IsCompleted, "completion is re-derived, not latched, at the domain level")
}

func TestWeeklistRecomputeCompletionEmptyList(t *testing.T) {
	t.Parallel()

	w := &domain.Weeklist{Tasks: []domain.Task{}}
	w.RecomputeCompletion()
	assert.True(t, w.IsCompleted, "a list with no tasks has nothing left to do")
}
