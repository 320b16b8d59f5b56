package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo backs dev and tests. It follows the same upsert rules as
// PGRepo: a name set by the user survives later sign-ins.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]User
	now  func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]User),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now()
	prev, exists := r.byID[user.ID]
	switch {
	case !exists:
		user.CreatedAt = ts
	case prev.Name != "":
		user.Name = prev.Name
		user.CreatedAt = prev.CreatedAt
	default:
		user.CreatedAt = prev.CreatedAt
	}
	user.UpdatedAt = ts
	r.byID[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	user, ok := r.byID[userID]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) UpdateName(ctx context.Context, userID, name string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Name, user.UpdatedAt = name, r.now()
	r.byID[userID] = user
	return user, nil
}
