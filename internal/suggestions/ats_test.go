package suggestions

import (
	"strings"
	"testing"

	"resume-builder/resume/model"
)

func completeDocument() model.ResumeDocument {
	return model.ResumeDocument{
		PersonalInfo: model.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555", Location: "London"},
		Summary:      "Engineer with ten years of experience building analytical engines and compilers.",
		Experience:   []model.Experience{{Company: "Engines Ltd", Position: "Engineer", Description: "Built things."}},
		Education:    []model.Education{{School: "Home", Degree: "BSc"}},
		Skills:       []string{"Go", "SQL", "AWS", "Docker", "Redis"},
		Projects:     []model.Project{{Name: "Difference Engine"}},
	}
}

func TestScoreATSCompleteDocument(t *testing.T) {
	res := ScoreATS(completeDocument())
	if res.Score != 100 || len(res.Suggestions) != 0 {
		t.Fatalf("expected perfect score, got %+v", res)
	}
	if !strings.HasPrefix(res.Feedback, "Excellent") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
}

func TestScoreATSEmptyDocument(t *testing.T) {
	res := ScoreATS(model.ResumeDocument{})
	if res.Score != 0 {
		t.Fatalf("expected 0, got %d", res.Score)
	}
	if len(res.Suggestions) != 12 {
		t.Fatalf("expected a tip per failed check, got %v", res.Suggestions)
	}
	if res.Suggestions == nil {
		t.Fatalf("suggestions must not be nil")
	}
}

func TestScoreATSPartialDocument(t *testing.T) {
	doc := model.ResumeDocument{
		PersonalInfo: model.PersonalInfo{FullName: "Ada", Email: "ada@example.com"},
		Summary:      "Engineer.",
		Skills:       []string{"Go", " "},
		Experience:   []model.Experience{{Company: "A"}},
	}
	res := ScoreATS(doc)
	// name, email, summary, one skill, experience without description
	if res.Score != 10+10+10+5+15 {
		t.Fatalf("unexpected score %d (%v)", res.Score, res.Suggestions)
	}
	if res.Feedback != "Your resume needs more detail to pass ATS screening." {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
}
