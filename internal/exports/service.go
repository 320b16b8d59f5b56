package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/inspect"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// ResumeReader loads a resume owned by userID.
type ResumeReader interface {
	Get(ctx context.Context, userID, resumeID string) (resumes.Resume, error)
}

// Service coordinates composing, storing and serving exports.
type Service struct {
	Repo    Repo
	Resumes ResumeReader
	Store   object.ObjectStore
	// Queue is optional; without it exports are processed inline.
	Queue queue.Client
	Now   func() time.Time
	NewID func() string
}

func NewService(repo Repo, resumeReader ResumeReader, store object.ObjectStore, q queue.Client) *Service {
	return &Service{
		Repo:    repo,
		Resumes: resumeReader,
		Store:   store,
		Queue:   q,
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   uuid.NewString,
	}
}

type requestIDKey struct{}

// WithRequestID attaches a request id used in logs and queue messages.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Request records a queued export for the resume. With a queue configured
// the export is enqueued and returned as queued; otherwise it is processed
// before returning.
func (s *Service) Request(ctx context.Context, userID, resumeID string) (Export, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(resumeID) == "" {
		return Export{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Resumes == nil || s.Store == nil {
		return Export{}, errors.New("missing dependencies")
	}
	if _, err := s.Resumes.Get(ctx, userID, resumeID); err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}

	export := Export{
		ID:        s.NewID(),
		UserID:    userID,
		ResumeID:  resumeID,
		Status:    StatusQueued,
		CreatedAt: s.Now(),
	}
	if err := s.Repo.Create(ctx, export); err != nil {
		return Export{}, err
	}
	metrics.IncExportRequested()

	if s.Queue != nil {
		msg := queue.Message{
			ExportID:   export.ID,
			RequestID:  requestIDFrom(ctx),
			EnqueuedAt: s.Now().Format(time.RFC3339),
			Version:    queue.MessageVersion,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.fail(ctx, export.ID, fmt.Errorf("enqueue: %w", err))
			return Export{}, err
		}
		telemetry.Info("export.enqueued", map[string]any{
			"export_id":  export.ID,
			"resume_id":  resumeID,
			"request_id": msg.RequestID,
		})
		return export, nil
	}

	// Inline processing records failures on the export itself.
	_ = s.Process(ctx, export.ID)
	return s.Repo.GetByID(ctx, export.ID)
}

// Process composes and stores the PDF for a queued export. Completed
// exports are left untouched.
func (s *Service) Process(ctx context.Context, exportID string) error {
	export, err := s.Repo.GetByID(ctx, exportID)
	if err != nil {
		return err
	}
	if export.Status == StatusCompleted {
		return nil
	}
	if err := s.Repo.SetStatus(ctx, exportID, StatusProcessing); err != nil {
		return err
	}

	artifact, err := s.render(ctx, export)
	if err != nil {
		s.fail(ctx, exportID, err)
		return err
	}
	if err := s.Repo.Complete(ctx, exportID, artifact, s.Now()); err != nil {
		return err
	}
	metrics.IncExportCompleted()
	telemetry.Info("export.completed", map[string]any{
		"export_id":         exportID,
		"resume_id":         export.ResumeID,
		"request_id":        requestIDFrom(ctx),
		"page_count":        artifact.PageCount,
		"size_bytes":        artifact.SizeBytes,
		"status_transition": string(export.Status) + "->" + string(StatusCompleted),
	})
	return nil
}

func (s *Service) render(ctx context.Context, export Export) (Artifact, error) {
	resume, err := s.Resumes.Get(ctx, export.UserID, export.ResumeID)
	if err != nil {
		return Artifact{}, fmt.Errorf("load resume: %w", err)
	}
	data, fileName, err := s.Compose(resume.Document)
	if err != nil {
		return Artifact{}, err
	}
	info, err := inspect.Inspect(data)
	if err != nil {
		return Artifact{}, fmt.Errorf("inspect pdf: %w", err)
	}
	metrics.ObserveComposePages(info.Pages)

	key, err := object.ExportKey(export.UserID, export.ID, fileName)
	if err != nil {
		return Artifact{}, fmt.Errorf("storage key: %w", err)
	}
	size, err := s.Store.Put(ctx, key, render.MimeTypePDF, bytes.NewReader(data))
	if err != nil {
		return Artifact{}, fmt.Errorf("store pdf: %w", err)
	}
	return Artifact{FileName: fileName, StorageKey: key, SizeBytes: size, PageCount: info.Pages}, nil
}

func (s *Service) fail(ctx context.Context, exportID string, cause error) {
	metrics.IncExportFailed()
	if err := s.Repo.Fail(ctx, exportID, cause.Error(), s.Now()); err != nil {
		telemetry.Error("export.fail_update", map[string]any{"export_id": exportID, "error": err.Error()})
	}
	telemetry.Error("export.failed", map[string]any{
		"export_id":  exportID,
		"request_id": requestIDFrom(ctx),
		"error":      cause.Error(),
	})
}

// Compose renders a document without storing it and returns the PDF bytes
// and the suggested download name.
func (s *Service) Compose(doc model.ResumeDocument, opts ...render.Option) ([]byte, string, error) {
	start := time.Now()
	data, err := render.Compose(doc, opts...)
	metrics.ObserveComposeDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncComposeFailed()
		return nil, "", fmt.Errorf("compose: %w", err)
	}
	return data, render.SuggestedFileName(doc.PersonalInfo.FullName), nil
}

// Get returns an export owned by userID.
func (s *Service) Get(ctx context.Context, userID, exportID string) (Export, error) {
	export, err := s.Repo.GetByID(ctx, exportID)
	if err != nil {
		return Export{}, err
	}
	if export.UserID != userID {
		return Export{}, ErrForbidden
	}
	return export, nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Open returns the stored PDF for a completed export. The caller closes
// the reader.
func (s *Service) Open(ctx context.Context, userID, exportID string) (Export, io.ReadCloser, error) {
	export, err := s.Get(ctx, userID, exportID)
	if err != nil {
		return Export{}, nil, err
	}
	if export.Status != StatusCompleted {
		return export, nil, ErrNotReady
	}
	rc, err := s.Store.Open(ctx, export.StorageKey)
	if err != nil {
		return export, nil, fmt.Errorf("open artifact: %w", err)
	}
	return export, rc, nil
}
