package exports

import (
	"errors"
	"time"
)

type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var (
	ErrNotFound     = errors.New("export not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotReady     = errors.New("export not ready")
)

// Export tracks one rendering of a saved resume into a stored PDF.
type Export struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ResumeID    string     `json:"resumeId"`
	Status      Status     `json:"status"`
	FileName    string     `json:"fileName,omitempty"`
	StorageKey  string     `json:"-"`
	SizeBytes   int64      `json:"sizeBytes"`
	PageCount   int        `json:"pageCount"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Artifact describes a stored PDF.
type Artifact struct {
	FileName   string
	StorageKey string
	SizeBytes  int64
	PageCount  int
}
