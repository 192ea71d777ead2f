// Package memory holds process-local implementations of the repositories,
// used when STORAGE_BACKEND=memory and throughout the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

type UserRepository struct {
	mu     sync.RWMutex
	lastID int64
	byID   map[int64]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *UserRepository) findByUsername(username string) *domain.User {
	for _, u := range r.byID {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.findByUsername(username)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByUsername(username) != nil, nil
}

// List returns users ordered by id.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByUsername(user.Username) != nil {
		return nil, domain.ErrUsernameConflict
	}
	r.lastID++
	stored := cloneUser(user)
	stored.ID = r.lastID
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

// Put stores user under its own ID, replacing any existing record. It lets
// callers seed accounts with known ids and roles.
func (r *UserRepository) Put(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[user.ID] = cloneUser(user)
	if user.ID > r.lastID {
		r.lastID = user.ID
	}
}

func (r *UserRepository) UpdateNickname(_ context.Context, id int64, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Nickname = nickname
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
