package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid resume input")
)

type Repo interface {
	Create(ctx context.Context, resume Resume) error
	Get(ctx context.Context, id string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, resume Resume) (Resume, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}
