package service_test

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// fakeTransactor runs the function directly; the fake stores do not need a
// real transaction.
type fakeTransactor struct{}

func (fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// fakeUserStore is an in-memory store.UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if existing.Mobile == user.Mobile {
			return store.ErrMobileExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) IncrementWeeklistCount(ctx context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	user.WeeklistsCreated++
	return user.WeeklistsCreated, nil
}

// fakeWeeklistStore is an in-memory store.WeeklistStore that honors the
// optimistic version check the way the real store does.
type fakeWeeklistStore struct {
	mu        sync.Mutex
	weeklists map[uuid.UUID]*domain.Weeklist
}

func newFakeWeeklistStore() *fakeWeeklistStore {
	return &fakeWeeklistStore{weeklists: make(map[uuid.UUID]*domain.Weeklist)}
}

func (s *fakeWeeklistStore) WithTx(tx *sql.Tx) store.WeeklistStore { return s }

func cloneWeeklist(w *domain.Weeklist) *domain.Weeklist {
	clone := *w
	clone.Tasks = append([]domain.Task(nil), w.Tasks...)
	return &clone
}

func (s *fakeWeeklistStore) Create(ctx context.Context, w *domain.Weeklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weeklists[w.ID] = cloneWeeklist(w)
	return nil
}

func (s *fakeWeeklistStore) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Weeklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.weeklists[id]
	if !ok || w.CreatedBy != ownerID {
		return nil, store.ErrWeeklistNotFound
	}
	return cloneWeeklist(w), nil
}

func (s *fakeWeeklistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Weeklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*domain.Weeklist{}
	for _, w := range s.weeklists {
		if w.CreatedBy == ownerID {
			result = append(result, cloneWeeklist(w))
		}
	}
	return result, nil
}

func (s *fakeWeeklistStore) CountOpenByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, w := range s.weeklists {
		if w.CreatedBy == ownerID && w.IsOpen() {
			count++
		}
	}
	return count, nil
}

func (s *fakeWeeklistStore) ListOpen(ctx context.Context) ([]*domain.Weeklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*domain.Weeklist{}
	for _, w := range s.weeklists {
		if w.IsOpen() {
			result = append(result, cloneWeeklist(w))
		}
	}
	return result, nil
}

func (s *fakeWeeklistStore) Update(ctx context.Context, w *domain.Weeklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.weeklists[w.ID]
	if !ok {
		return store.ErrWeeklistNotFound
	}
	if current.Version != w.Version {
		return store.ErrUpdateConflict
	}
	stored := cloneWeeklist(w)
	stored.Version++
	s.weeklists[w.ID] = stored
	w.Version++
	return nil
}

func (s *fakeWeeklistStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.weeklists[id]; !ok {
		return store.ErrWeeklistNotFound
	}
	delete(s.weeklists, id)
	return nil
}

func (s *fakeWeeklistStore) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, w := range s.weeklists {
		if w.IsActive && !w.CreatedAt.After(cutoff) {
			w.IsActive = false
			w.Version++
			count++
		}
	}
	return count, nil
}
