package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/resume/inspect"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type renderFlags struct {
	in       string
	out      string
	pageSize string
	margin   float64
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a resume JSON file (or the built-in sample) to PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(f.in)
			if err != nil {
				return err
			}
			pages, err := renderToFile(doc, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s (%d pages)\n", f.out, pages)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.in, "in", "", "resume JSON file; empty renders the sample resume")
	cmd.Flags().StringVar(&f.out, "out", "./out/sample_resume.pdf", "output path for the generated PDF")
	cmd.Flags().StringVar(&f.pageSize, "page-size", render.PageA4, "page size: A4 or Letter")
	cmd.Flags().Float64Var(&f.margin, "margin", render.DefaultMargin, "page margin in millimetres")
	return cmd
}

func loadDocument(path string) (model.ResumeDocument, error) {
	if strings.TrimSpace(path) == "" {
		return sampleDocument(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeDocument{}, err
	}
	return model.Decode(raw)
}

// renderToFile writes the PDF plus the input JSON next to it and checks the
// written file reads back with the candidate's name on the first page.
func renderToFile(doc model.ResumeDocument, f renderFlags) (int, error) {
	data, err := render.Compose(doc, render.WithPageSize(f.pageSize), render.WithMargin(f.margin))
	if err != nil {
		return 0, fmt.Errorf("render failed: %w", err)
	}

	dir := filepath.Dir(f.out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(f.out, data, 0o644); err != nil {
		return 0, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(dir, "sample_resume.json"), payload, 0o644); err != nil {
		return 0, err
	}

	info, err := inspectFile(f.out)
	if err != nil {
		return 0, fmt.Errorf("render validation failed: %w", err)
	}
	if name := strings.TrimSpace(doc.PersonalInfo.FullName); name != "" && !strings.Contains(info.Text, name) {
		return 0, fmt.Errorf("render validation failed: %q not found in output", name)
	}
	return info.Pages, nil
}

func inspectFile(path string) (inspect.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inspect.Info{}, err
	}
	return inspect.Inspect(data)
}

func sampleDocument() model.ResumeDocument {
	return model.ResumeDocument{
		PersonalInfo: model.PersonalInfo{
			FullName: "Jordan Lee",
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Location: "Austin, TX",
			LinkedIn: "linkedin.com/in/jordanlee",
			GitHub:   "github.com/jordanlee",
		},
		Summary: "Backend engineer with 8+ years of experience building resilient APIs and data services. Led platform modernization initiatives spanning cloud migration and observability adoption.",
		Experience: []model.Experience{
			{
				Company:     "Acme Logistics",
				Position:    "Senior Backend Engineer",
				StartDate:   "2021-04",
				Current:     true,
				Description: "Designed a routing service that reduced shipment latency by 18%. Implemented distributed tracing to cut incident triage time by 35%.",
			},
			{
				Company:     "Blue Harbor Systems",
				Position:    "Backend Engineer",
				StartDate:   "2018-01",
				EndDate:     "2021-03",
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []model.Education{
			{School: "University of Texas", Degree: "BSc", FieldOfStudy: "Computer Science", StartDate: "2013", EndDate: "2017"},
		},
		Projects: []model.Project{
			{Name: "routekit", Description: "Open source route planning library.", Technologies: []string{"Go"}, StartDate: "2022"},
		},
		Skills:         []string{"Go", "Java", "PostgreSQL", "Redis", "AWS", "Kubernetes"},
		Certifications: []model.Certification{{Name: "AWS Solutions Architect", Issuer: "Amazon", IssueDate: "2022"}},
		Languages:      []model.Language{{Name: "English", Proficiency: "Native"}, {Name: "Spanish", Proficiency: "Intermediate"}},
		Achievements:   []string{"Speaker at GopherCon 2023"},
	}
}
