package contract

import (
	"strings"
	"testing"

	"resume-builder/resume/model"
)

func TestJoinNonEmptySkipsBlanks(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "all", parts: []string{"a@b.c", "555", "Paris"}, want: "a@b.c | 555 | Paris"},
		{name: "middle empty", parts: []string{"a@b.c", "", "Paris"}, want: "a@b.c | Paris"},
		{name: "leading empty", parts: []string{"", "555", "Paris"}, want: "555 | Paris"},
		{name: "trailing blank", parts: []string{"a@b.c", "555", "  "}, want: "a@b.c | 555"},
		{name: "none", parts: []string{"", " ", ""}, want: ""},
	}
	for _, tt := range tests {
		if got := JoinNonEmpty(FieldSeparator, tt.parts...); got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
		got := JoinNonEmpty(FieldSeparator, tt.parts...)
		if strings.Contains(got, "|  |") || strings.HasPrefix(got, " |") || strings.HasSuffix(got, "| ") {
			t.Fatalf("%s: stray separator in %q", tt.name, got)
		}
	}
}

func TestExperienceRangeCurrentAlwaysPresent(t *testing.T) {
	cases := []model.Experience{
		{StartDate: "2020-01", EndDate: "", Current: true},
		{StartDate: "2020-01", EndDate: "2021-02", Current: true},
		{StartDate: "", EndDate: "2021-02", Current: true},
	}
	for _, exp := range cases {
		got := ExperienceRange(exp)
		if !strings.HasSuffix(got, Present) {
			t.Fatalf("expected %q to end with Present", got)
		}
		if strings.Contains(got, "2021-02") {
			t.Fatalf("stored end date leaked into %q", got)
		}
	}
	if got := ExperienceRange(model.Experience{StartDate: "2020-01", Current: true}); got != "2020-01 - Present" {
		t.Fatalf("unexpected range %q", got)
	}
	if got := ExperienceRange(model.Experience{StartDate: "2018", EndDate: "2019"}); got != "2018 - 2019" {
		t.Fatalf("unexpected range %q", got)
	}
}

func TestCertificationRange(t *testing.T) {
	if got := CertificationRange(model.Certification{IssueDate: "2022-05"}); got != "2022-05" {
		t.Fatalf("unexpected range %q", got)
	}
	if got := CertificationRange(model.Certification{IssueDate: "2022-05", ExpiryDate: "2025-05"}); got != "2022-05 - 2025-05" {
		t.Fatalf("unexpected range %q", got)
	}
}

func TestSecondaryLinesUseFallbacksAndSuffixes(t *testing.T) {
	if got := SchoolLine(model.Education{GPA: "3.9"}); got != "School Name • GPA: 3.9" {
		t.Fatalf("unexpected school line %q", got)
	}
	if got := DegreeLine(model.Education{Degree: "BSc"}); got != "BSc in Field" {
		t.Fatalf("unexpected degree line %q", got)
	}
	if got := IssuerLine(model.Certification{Issuer: "AWS", CredentialID: "ABC"}); got != "AWS • ID: ABC" {
		t.Fatalf("unexpected issuer line %q", got)
	}
	if got := IssuerLine(model.Certification{}); got != FallbackIssuer {
		t.Fatalf("unexpected issuer fallback %q", got)
	}
}

func TestLanguagesLine(t *testing.T) {
	langs := []model.Language{
		{Name: "English", Proficiency: "Native"},
		{Name: "Klingon", Proficiency: "conversational-ish"},
		{Name: "French"},
		{},
	}
	want := "English (Native) • Klingon (conversational-ish) • French"
	if got := LanguagesLine(langs); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSkillsLine(t *testing.T) {
	if got := SkillsLine([]string{"C++", "Rust", "Go"}); got != "C++ • Rust • Go" {
		t.Fatalf("unexpected skills line %q", got)
	}
}
