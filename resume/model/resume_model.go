package model

// ResumeDocument is the complete exportable resume record.
// Composers treat it as read-only input.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	Achievements   []string        `json:"achievements"`
}

// PersonalInfo holds identity and contact details.
// Twitter, Codechef and Codeforces are kept for the builder but never rendered.
type PersonalInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Website    string `json:"website,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	GitHub     string `json:"github,omitempty"`
	Portfolio  string `json:"portfolio,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Codechef   string `json:"codechef,omitempty"`
	Codeforces string `json:"codeforces,omitempty"`
}

// Experience is a work history entry.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is a school entry.
type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	GPA          string `json:"gpa,omitempty"`
}

// Project is a notable project. Technologies are stored but not rendered.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

// Certification is a credential entry. IssueDate travels as "date" on the wire.
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"date"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Language is a spoken language. Proficiency is free text
// (the builder offers Native, Fluent, Advanced, Intermediate, Basic).
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Normalized returns a copy with every nil list replaced by an empty list.
func (d ResumeDocument) Normalized() ResumeDocument {
	out := d
	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Certifications == nil {
		out.Certifications = []Certification{}
	}
	if out.Languages == nil {
		out.Languages = []Language{}
	}
	if out.Achievements == nil {
		out.Achievements = []string{}
	}
	projects := make([]Project, len(out.Projects))
	for i, p := range out.Projects {
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects[i] = p
	}
	out.Projects = projects
	return out
}
