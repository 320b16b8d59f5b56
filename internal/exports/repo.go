package exports

import (
	"context"
	"time"
)

// Repo defines persistence operations for exports.
type Repo interface {
	Create(ctx context.Context, export Export) error
	GetByID(ctx context.Context, exportID string) (Export, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error)
	SetStatus(ctx context.Context, exportID string, status Status) error
	Complete(ctx context.Context, exportID string, artifact Artifact, completedAt time.Time) error
	Fail(ctx context.Context, exportID string, message string, completedAt time.Time) error
}
