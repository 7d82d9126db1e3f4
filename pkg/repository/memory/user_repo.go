// Package memory keeps users in process memory. It backs tests and local runs;
// transactions serialize callers but do not roll back.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/pkg/auth"
)

// UserRepository implements auth.UserRepository with the same uniqueness
// rules as the SQL schema: email and google id are unique.
type UserRepository struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	users map[uuid.UUID]auth.User
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]auth.User), now: time.Now}
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) GetByGoogleID(_ context.Context, googleID string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return clone(u), nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) Create(_ context.Context, user auth.User) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	user.IsActive = true
	r.users[user.ID] = clone(user)
	return clone(user), nil
}

func (r *UserRepository) LinkGoogleID(_ context.Context, id uuid.UUID, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.GoogleID != nil && *other.GoogleID == googleID {
			return auth.ErrUserAlreadyExists
		}
	}
	u.GoogleID = &googleID
	r.users[id] = u
	return nil
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return auth.ErrNotFound
	}
	u.PasswordHash = &hash
	r.users[id] = u
	return nil
}

func (r *UserRepository) WithinTx(ctx context.Context, fn func(repo auth.UserRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

// Delete removes a user. Only tests and fixtures delete users.
func (r *UserRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func clone(u auth.User) auth.User {
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		u.PasswordHash = &h
	}
	if u.GoogleID != nil {
		g := *u.GoogleID
		u.GoogleID = &g
	}
	return u
}
