package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// DefaultTitle is used when a resume is saved without a title.
const DefaultTitle = "Untitled Resume"

type Resume struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Title     string               `json:"title"`
	Document  model.ResumeDocument `json:"document"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Summary is the list view of a resume.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r Resume) Summary() Summary {
	return Summary{
		ID:        r.ID,
		Title:     r.Title,
		FullName:  r.Document.PersonalInfo.FullName,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
