package contract

import (
	"strings"

	"resume-builder/resume/model"
)

// Fallback labels printed when an entry's title-like field is empty.
const (
	FallbackName          = "Your Name"
	FallbackPosition      = "Position"
	FallbackCompany       = "Company Name"
	FallbackDegree        = "Degree"
	FallbackField         = "Field"
	FallbackSchool        = "School Name"
	FallbackProject       = "Project"
	FallbackCertification = "Certification"
	FallbackIssuer        = "Issuer"
)

const (
	Present        = "Present"
	FieldSeparator = " | "
	ListSeparator  = " • "
	RangeSeparator = " - "
	Bullet         = "•"
)

// JoinNonEmpty joins the trimmed non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, sep)
}

// Or returns value unless it is blank, in which case fallback.
func Or(value, fallback string) string {
	if hasValue(value) {
		return value
	}
	return fallback
}

// ContactLine joins email, phone and location.
func ContactLine(p model.PersonalInfo) string {
	return JoinNonEmpty(FieldSeparator, p.Email, p.Phone, p.Location)
}

// WebLine joins website, linkedin, github and portfolio.
func WebLine(p model.PersonalInfo) string {
	return JoinNonEmpty(FieldSeparator, p.Website, p.LinkedIn, p.GitHub, p.Portfolio)
}

// ExperienceRange renders "start - end", with Present replacing the end
// whenever the entry is current regardless of the stored end date.
func ExperienceRange(exp model.Experience) string {
	end := exp.EndDate
	if exp.Current {
		end = Present
	}
	return JoinNonEmpty(RangeSeparator, exp.StartDate, end)
}

func EducationRange(edu model.Education) string {
	return JoinNonEmpty(RangeSeparator, edu.StartDate, edu.EndDate)
}

// CertificationRange is the issue date alone, or "issue - expiry" when the
// certification expires.
func CertificationRange(cert model.Certification) string {
	return JoinNonEmpty(RangeSeparator, cert.IssueDate, cert.ExpiryDate)
}

// DegreeLine renders "<degree> in <field>" with fallbacks.
func DegreeLine(edu model.Education) string {
	return Or(edu.Degree, FallbackDegree) + " in " + Or(edu.FieldOfStudy, FallbackField)
}

func SchoolLine(edu model.Education) string {
	line := Or(edu.School, FallbackSchool)
	if hasValue(edu.GPA) {
		line += ListSeparator + "GPA: " + strings.TrimSpace(edu.GPA)
	}
	return line
}

func IssuerLine(cert model.Certification) string {
	line := Or(cert.Issuer, FallbackIssuer)
	if hasValue(cert.CredentialID) {
		line += ListSeparator + "ID: " + strings.TrimSpace(cert.CredentialID)
	}
	return line
}

func ProjectLinks(p model.Project) string {
	return JoinNonEmpty(FieldSeparator, p.URL, p.GitHub)
}

// SkillsLine joins skills with the list separator.
func SkillsLine(skills []string) string {
	return JoinNonEmpty(ListSeparator, skills...)
}

// LanguagesLine renders "name (proficiency)" per language, dropping the
// parentheses when proficiency is blank.
func LanguagesLine(langs []model.Language) string {
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		name := strings.TrimSpace(l.Name)
		prof := strings.TrimSpace(l.Proficiency)
		switch {
		case name == "" && prof == "":
			continue
		case prof == "":
			parts = append(parts, name)
		default:
			parts = append(parts, strings.TrimSpace(name+" ("+prof+")"))
		}
	}
	return strings.Join(parts, ListSeparator)
}

func BulletLine(text string) string {
	return Bullet + " " + strings.TrimSpace(text)
}

func hasValue(value string) bool {
	return strings.TrimSpace(value) != ""
}
