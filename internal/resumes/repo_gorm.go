package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resume-builder/resume/model"
)

// resumeRow maps the resumes table. The document is stored as jsonb text.
type resumeRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string
	Title     string
	Document  string `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (resumeRow) TableName() string {
	return "resumes"
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func toRow(r Resume) (resumeRow, error) {
	doc, err := json.Marshal(r.Document.Normalized())
	if err != nil {
		return resumeRow{}, fmt.Errorf("encode document: %w", err)
	}
	return resumeRow{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Document:  string(doc),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func fromRow(row resumeRow) (Resume, error) {
	var doc model.ResumeDocument
	if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
		return Resume{}, fmt.Errorf("decode document %s: %w", row.ID, err)
	}
	return Resume{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Document:  doc.Normalized(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (g *GormRepo) Create(ctx context.Context, resume Resume) error {
	row, err := toRow(resume)
	if err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (g *GormRepo) Get(ctx context.Context, id string) (Resume, error) {
	var row resumeRow
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("failed to find resume: %w", err)
	}
	return fromRow(row)
}

func (g *GormRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	var rows []resumeRow
	if err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	out := make([]Resume, 0, len(rows))
	for _, row := range rows {
		r, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Update replaces title and document in one statement; the document column
// is rewritten as a whole.
func (g *GormRepo) Update(ctx context.Context, resume Resume) (Resume, error) {
	row, err := toRow(resume)
	if err != nil {
		return Resume{}, err
	}
	res := g.db.WithContext(ctx).Model(&resumeRow{}).
		Where("id = ?", resume.ID).
		Updates(map[string]any{
			"title":      row.Title,
			"document":   row.Document,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return Resume{}, fmt.Errorf("failed to update resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return Resume{}, ErrNotFound
	}
	return g.Get(ctx, resume.ID)
}

func (g *GormRepo) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&resumeRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := g.db.WithContext(ctx).Model(&resumeRow{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}
