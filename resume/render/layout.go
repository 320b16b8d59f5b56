package render

import (
	"strings"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

// Vertical advances in millimetres.
const (
	nameAdvance     = 10
	lineAdvance     = 6
	ruleOffset      = 2
	ruleAdvance     = 8
	sectionGap      = 8
	titleAdvance    = 8
	titleNeed       = 15
	entryGap        = 6
	compactEntryGap = 4
)

// Section titles in emission order.
const (
	TitleSummary        = "PROFESSIONAL SUMMARY"
	TitleExperience     = "WORK EXPERIENCE"
	TitleProjects       = "PROJECTS"
	TitleEducation      = "EDUCATION"
	TitleCertifications = "CERTIFICATIONS"
	TitleSkills         = "SKILLS"
	TitleLanguages      = "LANGUAGES"
	TitleAchievements   = "ACHIEVEMENTS"
)

// layout is the per-export cursor. It is never shared between exports.
type layout struct {
	c      canvas
	pageW  float64
	pageH  float64
	margin float64
	y      float64
}

func newLayout(c canvas, margin float64) *layout {
	c.AddPage()
	w, h := c.PageSize()
	return &layout{c: c, pageW: w, pageH: h, margin: margin, y: margin}
}

func (l *layout) printableWidth() float64 {
	return l.pageW - 2*l.margin
}

// ensure starts a new page when need millimetres do not fit above the
// bottom margin.
func (l *layout) ensure(need float64) {
	if l.y+need > l.pageH-l.margin {
		l.c.AddPage()
		l.y = l.margin
	}
}

func (l *layout) style(name string) {
	l.c.SetStyle(StyleMap[name])
}

func (l *layout) left(text string) {
	if text == "" {
		return
	}
	l.c.Text(l.margin, l.y, text)
}

func (l *layout) right(text string) {
	if text == "" {
		return
	}
	l.c.Text(l.pageW-l.margin-l.c.Measure(text), l.y, text)
}

func (l *layout) centered(text string) {
	l.c.Text(l.pageW/2-l.c.Measure(text)/2, l.y, text)
}

func (l *layout) compose(doc model.ResumeDocument) {
	l.header(doc.PersonalInfo)
	l.y += sectionGap

	sections := []struct {
		present bool
		render  func()
	}{
		{strings.TrimSpace(doc.Summary) != "", func() { l.summary(doc.Summary) }},
		{len(doc.Experience) > 0, func() { l.experience(doc.Experience) }},
		{len(doc.Projects) > 0, func() { l.projects(doc.Projects) }},
		{len(doc.Education) > 0, func() { l.education(doc.Education) }},
		{len(doc.Certifications) > 0, func() { l.certifications(doc.Certifications) }},
		{contract.SkillsLine(doc.Skills) != "", func() { l.skills(doc.Skills) }},
		{contract.LanguagesLine(doc.Languages) != "", func() { l.languages(doc.Languages) }},
		{contract.JoinNonEmpty("", doc.Achievements...) != "", func() { l.achievements(doc.Achievements) }},
	}
	for _, s := range sections {
		if !s.present {
			continue
		}
		s.render()
		l.y += sectionGap
	}
}

func (l *layout) header(p model.PersonalInfo) {
	l.style("name")
	l.ensure(nameAdvance)
	l.centered(contract.Or(p.FullName, contract.FallbackName))
	l.y += nameAdvance

	l.style("contact")
	for _, line := range []string{contract.ContactLine(p), contract.WebLine(p)} {
		if line == "" {
			continue
		}
		l.ensure(lineAdvance)
		l.centered(line)
		l.y += lineAdvance
	}

	l.ensure(ruleAdvance)
	l.c.Line(l.margin, l.y+ruleOffset, l.pageW-l.margin, l.y+ruleOffset, RuleWidth)
	l.y += ruleAdvance
}

func (l *layout) sectionTitle(title string) {
	l.ensure(titleNeed)
	l.style("sectionHeading")
	l.left(title)
	l.y += titleAdvance
}

// paragraph wraps text to the printable width, checking for a page break
// before each line.
func (l *layout) paragraph(text string) {
	l.style("body")
	for _, line := range wrapText(text, l.printableWidth(), l.c.Measure) {
		l.ensure(lineAdvance)
		l.left(line)
		l.y += lineAdvance
	}
}

func (l *layout) summary(text string) {
	l.sectionTitle(TitleSummary)
	l.paragraph(text)
}

func (l *layout) experience(items []model.Experience) {
	l.sectionTitle(TitleExperience)
	for i, exp := range items {
		if i > 0 {
			l.y += entryGap
		}
		l.style("entryTitle")
		l.ensure(lineAdvance)
		l.left(contract.Or(exp.Position, contract.FallbackPosition))
		l.right(contract.ExperienceRange(exp))
		l.y += lineAdvance

		l.style("company")
		l.ensure(lineAdvance)
		l.left(contract.Or(exp.Company, contract.FallbackCompany))
		l.y += lineAdvance

		if strings.TrimSpace(exp.Description) != "" {
			l.paragraph(exp.Description)
		}
	}
}

func (l *layout) projects(items []model.Project) {
	l.sectionTitle(TitleProjects)
	for i, p := range items {
		if i > 0 {
			l.y += entryGap
		}
		l.style("entryTitle")
		l.ensure(lineAdvance)
		l.left(contract.Or(p.Name, contract.FallbackProject))
		l.y += lineAdvance

		if strings.TrimSpace(p.Description) != "" {
			l.paragraph(p.Description)
		}

		if links := contract.ProjectLinks(p); links != "" {
			l.style("links")
			l.ensure(lineAdvance)
			l.left(links)
			l.y += lineAdvance
		}
	}
}

func (l *layout) education(items []model.Education) {
	l.sectionTitle(TitleEducation)
	for i, edu := range items {
		if i > 0 {
			l.y += compactEntryGap
		}
		l.style("entryTitle")
		l.ensure(lineAdvance)
		l.left(contract.DegreeLine(edu))
		l.right(contract.EducationRange(edu))
		l.y += lineAdvance

		l.style("body")
		l.ensure(lineAdvance)
		l.left(contract.SchoolLine(edu))
		l.y += lineAdvance
	}
}

func (l *layout) certifications(items []model.Certification) {
	l.sectionTitle(TitleCertifications)
	for i, cert := range items {
		if i > 0 {
			l.y += compactEntryGap
		}
		l.style("entryTitle")
		l.ensure(lineAdvance)
		l.left(contract.Or(cert.Name, contract.FallbackCertification))
		l.right(contract.CertificationRange(cert))
		l.y += lineAdvance

		l.style("body")
		l.ensure(lineAdvance)
		l.left(contract.IssuerLine(cert))
		l.y += lineAdvance
	}
}

func (l *layout) skills(items []string) {
	l.sectionTitle(TitleSkills)
	l.paragraph(contract.SkillsLine(items))
}

func (l *layout) languages(items []model.Language) {
	l.sectionTitle(TitleLanguages)
	l.paragraph(contract.LanguagesLine(items))
}

func (l *layout) achievements(items []string) {
	l.sectionTitle(TitleAchievements)
	for _, a := range items {
		if strings.TrimSpace(a) == "" {
			continue
		}
		l.paragraph(contract.BulletLine(a))
	}
}
