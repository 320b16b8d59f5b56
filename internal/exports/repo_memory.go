package exports

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores exports in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Export
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Export)}
}

func (r *MemoryRepo) Create(ctx context.Context, export Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[export.ID] = export
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, exportID string) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	export, ok := r.byID[exportID]
	if !ok {
		return Export{}, ErrNotFound
	}
	return export, nil
}

// ListByUser returns exports for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	out := make([]Export, 0)
	for _, e := range r.byID {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Export{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) update(exportID string, fn func(*Export)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	export, ok := r.byID[exportID]
	if !ok {
		return ErrNotFound
	}
	fn(&export)
	r.byID[exportID] = export
	return nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, exportID string, status Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(exportID, func(e *Export) { e.Status = status })
}

func (r *MemoryRepo) Complete(ctx context.Context, exportID string, artifact Artifact, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(exportID, func(e *Export) {
		e.Status = StatusCompleted
		e.FileName = artifact.FileName
		e.StorageKey = artifact.StorageKey
		e.SizeBytes = artifact.SizeBytes
		e.PageCount = artifact.PageCount
		e.Error = ""
		e.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) Fail(ctx context.Context, exportID string, message string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.update(exportID, func(e *Export) {
		e.Status = StatusFailed
		e.Error = message
		e.CompletedAt = &completedAt
	})
}

var _ Repo = (*MemoryRepo)(nil)
