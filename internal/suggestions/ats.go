package suggestions

import (
	"strings"

	"resume-builder/resume/model"
)

const (
	minSummaryLength = 50
	minSkillCount    = 5
)

// ScoreATS grades how well a document will survive keyword-based screening.
// The score is the sum of the weights of the checks that pass.
func ScoreATS(doc model.ResumeDocument) ATSResult {
	doc = doc.Normalized()
	info := doc.PersonalInfo

	var score int
	tips := []string{}
	check := func(ok bool, weight int, tip string) {
		if ok {
			score += weight
			return
		}
		tips = append(tips, tip)
	}

	check(strings.TrimSpace(info.FullName) != "", 10, "Add your full name")
	check(strings.TrimSpace(info.Email) != "", 10, "Add an email address")
	check(strings.TrimSpace(info.Phone) != "", 5, "Add a phone number")
	check(strings.TrimSpace(info.Location) != "", 5, "Add your location")

	summary := strings.TrimSpace(doc.Summary)
	check(summary != "", 10, "Add a professional summary")
	check(len(summary) >= minSummaryLength, 5, "Expand your summary to at least two sentences")

	check(len(doc.Experience) > 0, 15, "Add work experience")
	check(len(doc.Experience) > 0 && allDescribed(doc.Experience), 10, "Describe your responsibilities for every position")

	check(len(doc.Education) > 0, 10, "Add your education")

	skills := len(nonEmpty(doc.Skills))
	check(skills > 0, 5, "List your skills")
	check(skills >= minSkillCount, 5, "List at least five relevant skills")

	extras := len(doc.Projects) + len(doc.Certifications) + len(doc.Languages) + len(doc.Achievements)
	check(extras > 0, 10, "Add projects, certifications, languages or achievements")

	return ATSResult{Score: score, Suggestions: tips, Feedback: feedbackFor(score)}
}

func allDescribed(items []model.Experience) bool {
	for _, e := range items {
		if strings.TrimSpace(e.Description) == "" {
			return false
		}
	}
	return true
}

func feedbackFor(score int) string {
	switch {
	case score >= 80:
		return "Excellent! Your resume is well optimized for ATS."
	case score >= 60:
		return "Good resume with room for improvement."
	default:
		return "Your resume needs more detail to pass ATS screening."
	}
}
