package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid user input")
)

type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	UpdateName(ctx context.Context, userID, name string) (User, error)
}

// ResumeCounter reports how many live resumes a user owns.
type ResumeCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}
